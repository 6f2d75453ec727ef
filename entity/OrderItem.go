package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem copies name and price from the dish at checkout and is never
// updated afterwards.
type OrderItem struct {
	gorm.Model
	OrderID uint `gorm:"index;not null" json:"orderId"`

	DishID    uint            `gorm:"not null" json:"dishId"`
	DishName  string          `gorm:"not null" json:"dishName"`
	DishPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"dishPrice"`

	Quantity   int             `gorm:"not null" json:"quantity"`
	Notes      string          `json:"notes,omitempty"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalPrice"`
}
