package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Dish struct {
	gorm.Model
	Name          string              `gorm:"not null" json:"name"`
	Price         decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"price"`
	DiscountPrice decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"discountPrice"`
	IsAvailable   bool                `json:"isAvailable"`

	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
