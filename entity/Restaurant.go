package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name    string `gorm:"not null" json:"name"`
	Address string `json:"address"`

	DeliveryFee    decimal.Decimal `gorm:"type:decimal(12,2)" json:"deliveryFee"`
	MinOrderAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"minOrderAmount"`
	IsActive       bool            `json:"isActive"`

	OwnerID uint `gorm:"index" json:"ownerId"` // owner (users.id)
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	Employees []RestaurantEmployee `json:"-"`
	Dishes    []Dish               `json:"-"`
}
