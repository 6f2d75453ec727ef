// Package events publishes order lifecycle events for downstream consumers
// (notifications, analytics). Delivery is best effort: the order is already
// committed when an event is published.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bennblr/food-app/entity"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
	TypeOrderClaimed       = "order.claimed"
	TypePaymentReconciled  = "order.payment_reconciled"
)

type OrderEvent struct {
	ID            string               `json:"id"`
	Type          string               `json:"type"`
	OrderID       uint                 `json:"orderId"`
	OrderNumber   string               `json:"orderNumber"`
	RestaurantID  uint                 `json:"restaurantId"`
	From          entity.OrderStatus   `json:"from,omitempty"`
	To            entity.OrderStatus   `json:"to"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus,omitempty"`
	ActorID       uint                 `json:"actorId"`
	Capacity      entity.Capacity      `json:"capacity,omitempty"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

// NewOrderEvent fills ID and OccurredAt.
func NewOrderEvent(typ string, o *entity.Order) OrderEvent {
	return OrderEvent{
		ID:            uuid.NewString(),
		Type:          typ,
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		RestaurantID:  o.RestaurantID,
		To:            o.Status,
		PaymentStatus: o.PaymentStatus,
		OccurredAt:    time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e OrderEvent) error
	Close() error
}

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e OrderEvent) error {
	msg, err := toMessage(e)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error { return p.Writer.Close() }

// keyed by order number so every event of one order lands on one partition
func toMessage(e OrderEvent) (kafka.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(e.OrderNumber),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
		Time: e.OccurredAt,
	}, nil
}

// Nop drops every event; used when KAFKA_BROKERS is empty.
type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) error { return nil }
func (Nop) Close() error                              { return nil }
