package entity

import (
	"gorm.io/gorm"
)

// CartItem is one (user, dish) line pending checkout. All lines of a user
// point at the same restaurant.
type CartItem struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex:idx_cart_user_dish;not null" json:"userId"`
	DishID uint `gorm:"uniqueIndex:idx_cart_user_dish;not null" json:"dishId"`
	Dish   Dish `json:"dish"`

	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Quantity int    `gorm:"not null" json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}
