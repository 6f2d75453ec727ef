package repository

import (
	"github.com/bennblr/food-app/entity"

	"gorm.io/gorm"
)

type DishRepository struct{ DB *gorm.DB }

func NewDishRepository(db *gorm.DB) *DishRepository { return &DishRepository{DB: db} }

func (r *DishRepository) FindByID(tx *gorm.DB, id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := tx.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
