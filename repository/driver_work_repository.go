package repository

import (
	"time"

	"github.com/bennblr/food-app/entity"

	"gorm.io/gorm"
)

// DriverWorkRepository คุยกับตาราง driver_works (ประวัติการรับงานของ driver)
type DriverWorkRepository struct{ DB *gorm.DB }

func NewDriverWorkRepository(db *gorm.DB) *DriverWorkRepository {
	return &DriverWorkRepository{DB: db}
}

// Open records a new claim.
func (r *DriverWorkRepository) Open(tx *gorm.DB, driverID, orderID uint, at time.Time) error {
	return tx.Create(&entity.DriverWork{
		DriverID:  driverID,
		OrderID:   orderID,
		ClaimedAt: at,
	}).Error
}

// Complete stamps delivered_at on the order's open claim.
func (r *DriverWorkRepository) Complete(tx *gorm.DB, orderID uint, at time.Time) (int64, error) {
	return r.closeOpen(tx, orderID, "delivered_at", at)
}

// Release ends the open claim without delivery (admin took the order back).
func (r *DriverWorkRepository) Release(tx *gorm.DB, orderID uint, at time.Time) (int64, error) {
	return r.closeOpen(tx, orderID, "released_at", at)
}

// 0 rows = ไม่มีงานค้างของ order นี้
func (r *DriverWorkRepository) closeOpen(tx *gorm.DB, orderID uint, column string, at time.Time) (int64, error) {
	res := tx.Model(&entity.DriverWork{}).
		Where("order_id = ? AND delivered_at IS NULL AND released_at IS NULL", orderID).
		Update(column, at)
	return res.RowsAffected, res.Error
}

