package entity

import (
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser               Role = "USER"
	RoleRestaurantOwner    Role = "RESTAURANT_OWNER"
	RoleRestaurantEmployee Role = "RESTAURANT_EMPLOYEE"
	RoleDriver             Role = "DRIVER"
	RoleAppOwner           Role = "APP_OWNER"
	RoleAppEditor          Role = "APP_EDITOR"
)

// IsAppAdmin: APP_OWNER and APP_EDITOR see and override every order.
func (r Role) IsAppAdmin() bool {
	return r == RoleAppOwner || r == RoleAppEditor
}

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     Role   `gorm:"size:32;not null" json:"role"`

	// Relations: preload เฉพาะตอนจำเป็น
	RestaurantsOwned []Restaurant `gorm:"foreignKey:OwnerID" json:"-"`
	Addresses        []Address    `json:"-"`
}

var Roles = []Role{
	RoleUser, RoleRestaurantOwner, RoleRestaurantEmployee,
	RoleDriver, RoleAppOwner, RoleAppEditor,
}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}
