package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	OrderNumber string `gorm:"size:32;uniqueIndex;not null" json:"orderNumber"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"` // preload เมื่อจำเป็น

	AddressID uint    `gorm:"not null" json:"addressId"`
	Address   Address `json:"-"`

	Status        OrderStatus   `gorm:"size:20;index;not null" json:"status"`
	PaymentMethod PaymentMethod `gorm:"size:20;not null" json:"paymentMethod"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null" json:"paymentStatus"`

	// money snapshot, fixed at checkout
	SubtotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotalAmount"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"deliveryFee"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discountAmount"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"finalAmount"`

	Notes        string  `json:"notes,omitempty"`
	CancelReason *string `json:"cancelReason,omitempty"`

	DriverID        *uint `gorm:"index" json:"driverId,omitempty"`
	PromotionCodeID *uint `json:"promotionCodeId,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
}
