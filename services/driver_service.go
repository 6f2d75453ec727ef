// services/driver_service.go
package services

import (
	"context"
	"encoding/json"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/cache"
	"github.com/bennblr/food-app/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const availableFeedLimit = 50

// DriverService serves the driver's polling lists. The available-orders
// feed is cached briefly; OrderService drops it whenever an order enters
// or leaves READY.
type DriverService struct {
	DB    *gorm.DB
	Repos Repos
	Feed  cache.Cache
	Log   *zap.Logger
}

func NewDriverService(db *gorm.DB, repos Repos, feed cache.Cache, log *zap.Logger) *DriverService {
	return &DriverService{DB: db, Repos: repos, Feed: feed, Log: log}
}

// ListAvailable returns READY orders nobody has claimed yet, newest first.
func (s *DriverService) ListAvailable(ctx context.Context) ([]entity.Order, error) {
	if raw, ok, err := s.Feed.Get(ctx, cache.KeyAvailableOrders); err != nil {
		s.Log.Warn("driver feed cache read failed", zap.Error(err))
	} else if ok {
		var items []entity.Order
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
	}

	items, _, err := s.Repos.Orders.ListOrders(s.DB.WithContext(ctx), repository.OrderFilter{
		Status:     entity.StatusReady,
		Unassigned: true,
		Limit:      availableFeedLimit,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Order{}
	}

	if raw, err := json.Marshal(items); err == nil {
		if err := s.Feed.Set(ctx, cache.KeyAvailableOrders, raw); err != nil {
			s.Log.Warn("driver feed cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

// ListMine returns the orders assigned to the driver.
func (s *DriverService) ListMine(ctx context.Context, driverID uint, status entity.OrderStatus) ([]entity.Order, error) {
	items, _, err := s.Repos.Orders.ListOrders(s.DB.WithContext(ctx), repository.OrderFilter{
		DriverID: &driverID,
		Status:   status,
		Limit:    200,
	})
	if items == nil {
		items = []entity.Order{}
	}
	return items, err
}
