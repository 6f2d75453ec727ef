package configs

import (
	"fmt"

	"github.com/bennblr/food-app/entity"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects using DB_DRIVER / DB_SOURCE. Driver errors such as unique
// violations are translated to gorm.ErrDuplicatedKey.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBSource)
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gcfg := &gorm.Config{TranslateError: true}
	if !cfg.IsDevelopment() {
		gcfg.Logger = logger.Default.LogMode(logger.Warn)
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.DBDriver != "postgres" {
		// sqlite: one writer at a time
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate the schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{}, &entity.Address{},
		&entity.Restaurant{}, &entity.RestaurantEmployee{}, &entity.Dish{},
		&entity.CartItem{},
		&entity.Promotion{}, &entity.PromotionCode{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderStatusChange{},
		&entity.DriverWork{},
	)
}
