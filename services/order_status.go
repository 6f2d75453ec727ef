package services

import (
	"context"
	"strings"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/bennblr/food-app/pkg/events"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Cancel moves the order to CANCELLED with an optional reason.
func (s *OrderService) Cancel(ctx context.Context, actor Actor, orderID uint, reason string) (*entity.Order, error) {
	return s.transition(ctx, actor, orderID, ActionCancel, entity.StatusCancelled, reason)
}

// UpdateStatus is the restaurant/admin status change.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, orderID uint, to entity.OrderStatus, reason string) (*entity.Order, error) {
	if !to.Valid() {
		return nil, apperr.ValidationFields("invalid status", map[string]string{"status": "unknown order status"})
	}
	return s.transition(ctx, actor, orderID, ActionUpdateStatus, to, reason)
}

// Deliver completes an ON_THE_WAY order for its assigned driver.
func (s *OrderService) Deliver(ctx context.Context, actor Actor, orderID uint) (*entity.Order, error) {
	return s.transition(ctx, actor, orderID, ActionDeliver, entity.StatusDelivered, "")
}

// transition: gate -> state machine -> guarded update -> history row,
// in one transaction.
func (s *OrderService) transition(ctx context.Context, actor Actor, orderID uint, action Action, to entity.OrderStatus, reason string) (*entity.Order, error) {
	reason = strings.TrimSpace(reason)
	var (
		out      *entity.Order
		from     entity.OrderStatus
		capacity entity.Capacity
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := s.Repos.Orders.GetOrder(tx, orderID)
		if err != nil {
			return notFound(err, "order not found")
		}
		capacity, err = s.Gate.Authorize(tx, actor, o, action)
		if err != nil {
			return err
		}
		if err := CheckTransition(capacity, o.Status, to); err != nil {
			return err
		}
		from = o.Status

		extra := map[string]any{}
		if to == entity.StatusCancelled && reason != "" {
			extra["cancel_reason"] = reason
		}
		// admin ถอยกลับไปก่อนรับของ → ปล่อย order ให้ driver claim ใหม่ได้
		release := o.DriverID != nil && from == entity.StatusOnTheWay && to != entity.StatusDelivered
		if release && to.BeforePickup() {
			extra["driver_id"] = nil
		}
		n, err := s.Repos.Orders.UpdateStatusGuard(tx, o.ID, from, to, extra)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.New(apperr.Conflict, "order was changed by someone else, reload and retry")
		}

		switch {
		case to == entity.StatusDelivered && o.DriverID != nil:
			if _, err := s.Repos.DriverWorks.Complete(tx, o.ID, s.Now()); err != nil {
				return err
			}
		case release:
			if _, err := s.Repos.DriverWorks.Release(tx, o.ID, s.Now()); err != nil {
				return err
			}
		}

		if err := s.Repos.Orders.AddStatusChange(tx, &entity.OrderStatusChange{
			OrderID:    o.ID,
			FromStatus: from,
			ToStatus:   to,
			ActorID:    actor.ID,
			Capacity:   capacity,
			Reason:     reason,
		}); err != nil {
			return err
		}

		out, err = s.Repos.Orders.GetOrder(tx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("order status changed",
		zap.Uint("order_id", out.ID),
		zap.Uint("actor_id", actor.ID),
		zap.String("capacity", string(capacity)),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	s.afterCommit(ctx, events.TypeOrderStatusChanged, out, from, actor, capacity)
	return out, nil
}

// Claim assigns a READY, unassigned order to the calling driver. Of two
// drivers racing for the same order exactly one wins; the other gets
// CONFLICT.
func (s *OrderService) Claim(ctx context.Context, actor Actor, orderID uint) (*entity.Order, error) {
	var out *entity.Order

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := s.Repos.Orders.GetOrder(tx, orderID)
		if err != nil {
			return notFound(err, "order not found")
		}
		if _, err := s.Gate.Authorize(tx, actor, o, ActionClaim); err != nil {
			return err
		}

		n, err := s.Repos.Orders.ClaimGuard(tx, o.ID, actor.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			cur, err := s.Repos.Orders.GetOrder(tx, o.ID)
			if err != nil {
				return err
			}
			switch {
			case cur.Status.IsTerminal():
				return CheckTransition(entity.CapacityDriver, cur.Status, entity.StatusOnTheWay)
			case cur.DriverID != nil:
				return apperr.New(apperr.Conflict, "order already claimed by another driver")
			default:
				return apperr.Newf(apperr.InvalidTransition, "order is %s, only READY orders can be claimed", cur.Status)
			}
		}

		if err := s.Repos.DriverWorks.Open(tx, actor.ID, o.ID, s.Now()); err != nil {
			return err
		}
		if err := s.Repos.Orders.AddStatusChange(tx, &entity.OrderStatusChange{
			OrderID:    o.ID,
			FromStatus: entity.StatusReady,
			ToStatus:   entity.StatusOnTheWay,
			ActorID:    actor.ID,
			Capacity:   entity.CapacityDriver,
		}); err != nil {
			return err
		}

		out, err = s.Repos.Orders.GetOrder(tx, o.ID)
		return err
	})
	if err != nil {
		if apperr.Is(err, apperr.Conflict) {
			s.Log.Info("claim lost", zap.Uint("order_id", orderID), zap.Uint("actor_id", actor.ID))
		}
		return nil, err
	}

	s.Log.Info("order claimed", zap.Uint("order_id", out.ID), zap.Uint("actor_id", actor.ID))
	s.afterCommit(ctx, events.TypeOrderClaimed, out, entity.StatusReady, actor, entity.CapacityDriver)
	return out, nil
}

type ReconcileIn struct {
	PaymentStatus entity.PaymentStatus `json:"paymentStatus" binding:"required,paymentstatus"`
}

// ReconcilePayment records the payment outcome. It is the only change
// allowed on terminal orders; REFUNDED also moves the order to REFUNDED.
func (s *OrderService) ReconcilePayment(ctx context.Context, actor Actor, orderID uint, ps entity.PaymentStatus) (*entity.Order, error) {
	if !ps.Valid() {
		return nil, apperr.ValidationFields("invalid payment status", map[string]string{
			"paymentStatus": "must be one of PENDING, PAID, FAILED, REFUNDED",
		})
	}

	var (
		out  *entity.Order
		from entity.OrderStatus
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := s.Repos.Orders.GetOrder(tx, orderID)
		if err != nil {
			return notFound(err, "order not found")
		}
		if _, err := s.Gate.Authorize(tx, actor, o, ActionReconcile); err != nil {
			return err
		}
		if o.Status == entity.StatusRefunded {
			return apperr.New(apperr.InvalidTransition, "order is already refunded")
		}
		from = o.Status

		var n int64
		if ps == entity.PaymentRefunded {
			n, err = s.Repos.Orders.UpdateStatusGuard(tx, o.ID, from, entity.StatusRefunded,
				map[string]any{"payment_status": entity.PaymentRefunded})
		} else {
			n, err = s.Repos.Orders.UpdatePaymentGuard(tx, o.ID, o.PaymentStatus, ps)
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.New(apperr.Conflict, "order was changed by someone else, reload and retry")
		}

		if ps == entity.PaymentRefunded {
			if err := s.Repos.Orders.AddStatusChange(tx, &entity.OrderStatusChange{
				OrderID:    o.ID,
				FromStatus: from,
				ToStatus:   entity.StatusRefunded,
				ActorID:    actor.ID,
				Capacity:   entity.CapacityAdmin,
				Reason:     "payment refunded",
			}); err != nil {
				return err
			}
		}

		out, err = s.Repos.Orders.GetOrder(tx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("payment reconciled",
		zap.Uint("order_id", out.ID),
		zap.Uint("actor_id", actor.ID),
		zap.String("payment_status", string(ps)))
	s.afterCommit(ctx, events.TypePaymentReconciled, out, from, actor, entity.CapacityAdmin)
	return out, nil
}
