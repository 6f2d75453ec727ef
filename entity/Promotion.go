package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Promotion struct {
	gorm.Model
	Name          string          `json:"name"`
	DiscountType  DiscountType    `gorm:"size:20;not null" json:"discountType"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discountValue"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	IsActive      bool            `json:"isActive"`

	// nil = valid in every restaurant
	RestaurantID *uint `gorm:"index" json:"restaurantId,omitempty"`

	Codes []PromotionCode `json:"-"`
}

type PromotionCode struct {
	gorm.Model
	Code      string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	MaxUses   *int   `json:"maxUses,omitempty"`
	UsedCount int    `gorm:"not null" json:"usedCount"`
	IsActive  bool   `json:"isActive"`

	PromotionID uint      `gorm:"index;not null" json:"promotionId"`
	Promotion   Promotion `json:"promotion"`
}
