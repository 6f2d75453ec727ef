package entity

import (
	"gorm.io/gorm"
)

// Capacity is the role an actor acted in when changing an order.
type Capacity string

const (
	CapacityCustomer   Capacity = "CUSTOMER"
	CapacityRestaurant Capacity = "RESTAURANT"
	CapacityDriver     Capacity = "DRIVER"
	CapacityAdmin      Capacity = "ADMIN"
)

// OrderStatusChange is appended for every applied transition, including
// the initial "" -> PENDING at checkout.
type OrderStatusChange struct {
	gorm.Model
	OrderID    uint        `gorm:"index;not null" json:"orderId"`
	FromStatus OrderStatus `gorm:"size:20" json:"fromStatus"`
	ToStatus   OrderStatus `gorm:"size:20;not null" json:"toStatus"`
	ActorID    uint        `json:"actorId"`
	Capacity   Capacity    `gorm:"size:20" json:"capacity"`
	Reason     string      `json:"reason,omitempty"`
}
