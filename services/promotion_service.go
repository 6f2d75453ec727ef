package services

import (
	"context"
	"time"

	"github.com/bennblr/food-app/entity"

	"gorm.io/gorm"
)

// PromotionService is the public read side of promotions; redemption
// happens inside checkout.
type PromotionService struct {
	DB    *gorm.DB
	Repos Repos
	Now   func() time.Time
}

func NewPromotionService(db *gorm.DB, repos Repos) *PromotionService {
	return &PromotionService{DB: db, Repos: repos, Now: time.Now}
}

func (s *PromotionService) ListActive(ctx context.Context, restaurantID *uint) ([]entity.Promotion, error) {
	rows, err := s.Repos.Promotions.ListActive(s.DB.WithContext(ctx), restaurantID, s.Now())
	if rows == nil {
		rows = []entity.Promotion{}
	}
	return rows, err
}
