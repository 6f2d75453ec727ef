package services

import (
	"errors"

	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/bennblr/food-app/repository"

	"gorm.io/gorm"
)

// Repos bundles the repositories the services share.
type Repos struct {
	Orders      *repository.OrderRepository
	Carts       *repository.CartRepository
	Dishes      *repository.DishRepository
	Restaurants *repository.RestaurantRepository
	Promotions  *repository.PromotionRepository
	Addresses   *repository.AddressRepository
	DriverWorks *repository.DriverWorkRepository
	Users       *repository.UserRepository
}

func NewRepos(db *gorm.DB) Repos {
	return Repos{
		Orders:      repository.NewOrderRepository(db),
		Carts:       repository.NewCartRepository(db),
		Dishes:      repository.NewDishRepository(db),
		Restaurants: repository.NewRestaurantRepository(db),
		Promotions:  repository.NewPromotionRepository(db),
		Addresses:   repository.NewAddressRepository(db),
		DriverWorks: repository.NewDriverWorkRepository(db),
		Users:       repository.NewUserRepository(db),
	}
}

// notFound maps gorm.ErrRecordNotFound to NOT_FOUND and passes anything
// else through.
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, msg)
	}
	return err
}
