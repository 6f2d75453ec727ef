package repository

import (
	"time"

	"github.com/bennblr/food-app/entity"

	"gorm.io/gorm"
)

type PromotionRepository struct{ DB *gorm.DB }

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{DB: db}
}

func (r *PromotionRepository) FindCode(tx *gorm.DB, code string) (*entity.PromotionCode, error) {
	var pc entity.PromotionCode
	if err := tx.Preload("Promotion").Where("code = ?", code).First(&pc).Error; err != nil {
		return nil, err
	}
	return &pc, nil
}

// IncrementUsage counts one redemption unless the code is already used up.
// 0 rows affected means another checkout took the last use.
func (r *PromotionRepository) IncrementUsage(tx *gorm.DB, codeID uint) (int64, error) {
	res := tx.Model(&entity.PromotionCode{}).
		Where("id = ? AND (max_uses IS NULL OR used_count < max_uses)", codeID).
		Update("used_count", gorm.Expr("used_count + 1"))
	return res.RowsAffected, res.Error
}

// ListActive returns promotions running at now. restaurantID nil lists the
// global ones, otherwise only that restaurant's.
func (r *PromotionRepository) ListActive(tx *gorm.DB, restaurantID *uint, now time.Time) ([]entity.Promotion, error) {
	q := tx.Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now)
	if restaurantID != nil {
		q = q.Where("restaurant_id = ?", *restaurantID)
	} else {
		q = q.Where("restaurant_id IS NULL")
	}
	var rows []entity.Promotion
	err := q.Order("id DESC").Find(&rows).Error
	return rows, err
}
