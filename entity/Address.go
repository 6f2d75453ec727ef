package entity

import (
	"gorm.io/gorm"
)

type Address struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null" json:"userId"`
	City      string `json:"city"`
	Street    string `json:"street"`
	Building  string `json:"building"`
	Apartment string `json:"apartment,omitempty"`
	Comment   string `json:"comment,omitempty"`
}
