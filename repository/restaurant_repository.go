// repository/restaurant_repository.go
package repository

import (
	"github.com/bennblr/food-app/entity"
	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

// ดึงร้านตาม ID
func (r *RestaurantRepository) FindByID(tx *gorm.DB, id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := tx.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) IsOwnedBy(tx *gorm.DB, restID, userID uint) (bool, error) {
	var cnt int64
	err := tx.Model(&entity.Restaurant{}).
		Where("id = ? AND owner_id = ?", restID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *RestaurantRepository) IsActiveEmployee(tx *gorm.DB, restID, userID uint) (bool, error) {
	var cnt int64
	err := tx.Model(&entity.RestaurantEmployee{}).
		Where("restaurant_id = ? AND user_id = ? AND is_active = ?", restID, userID, true).
		Count(&cnt).Error
	return cnt > 0, err
}

// StaffRestaurantIDs lists restaurants the user owns or actively works at.
func (r *RestaurantRepository) StaffRestaurantIDs(tx *gorm.DB, userID uint) ([]uint, error) {
	var owned []uint
	if err := tx.Model(&entity.Restaurant{}).Where("owner_id = ?", userID).Pluck("id", &owned).Error; err != nil {
		return nil, err
	}
	var employed []uint
	if err := tx.Model(&entity.RestaurantEmployee{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("restaurant_id", &employed).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(owned)+len(employed))
	seen := map[uint]bool{}
	for _, id := range append(owned, employed...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
