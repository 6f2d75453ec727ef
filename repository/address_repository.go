package repository

import (
	"github.com/bennblr/food-app/entity"

	"gorm.io/gorm"
)

type AddressRepository struct{ DB *gorm.DB }

func NewAddressRepository(db *gorm.DB) *AddressRepository { return &AddressRepository{DB: db} }

// FindForUser loads the address only if it belongs to the user.
func (r *AddressRepository) FindForUser(tx *gorm.DB, addressID, userID uint) (*entity.Address, error) {
	var a entity.Address
	if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
