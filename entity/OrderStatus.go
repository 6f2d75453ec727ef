package entity

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusAccepted  OrderStatus = "ACCEPTED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusOnTheWay  OrderStatus = "ON_THE_WAY"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
	StatusRefunded  OrderStatus = "REFUNDED"
)

var OrderStatuses = []OrderStatus{
	StatusPending, StatusAccepted, StatusPreparing, StatusReady,
	StatusOnTheWay, StatusDelivered, StatusCancelled, StatusRefunded,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal: no transition leaves DELIVERED, CANCELLED or REFUNDED
// (payment reconciliation aside).
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// BeforePickup: the order has not left the restaurant yet.
func (s OrderStatus) BeforePickup() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusPreparing, StatusReady:
		return true
	}
	return false
}
