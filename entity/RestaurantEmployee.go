package entity

import (
	"gorm.io/gorm"
)

type RestaurantEmployee struct {
	gorm.Model
	RestaurantID uint `gorm:"uniqueIndex:idx_restaurant_employee;not null" json:"restaurantId"`
	UserID       uint `gorm:"uniqueIndex:idx_restaurant_employee;not null" json:"userId"`
	IsActive     bool `json:"isActive"`
}
