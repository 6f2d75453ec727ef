package repository

import (
	"github.com/bennblr/food-app/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// CreateOrder inserts the order together with its Items.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) NumberExists(tx *gorm.DB, number string) (bool, error) {
	var cnt int64
	if err := tx.Model(&entity.Order{}).Where("order_number = ?", number).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *OrderRepository) GetOrder(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderFilter narrows ListOrders. Zero fields do not filter.
type OrderFilter struct {
	UserID        uint
	RestaurantIDs []uint
	DriverID      *uint
	Unassigned    bool
	Status        entity.OrderStatus
	Page          int
	Limit         int
}

// Normalize applies paging defaults.
func (f *OrderFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
}

func (r *OrderRepository) ListOrders(tx *gorm.DB, f OrderFilter) ([]entity.Order, int64, error) {
	f.Normalize()

	q := tx.Model(&entity.Order{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.RestaurantIDs != nil {
		q = q.Where("restaurant_id IN ?", f.RestaurantIDs)
	}
	if f.DriverID != nil {
		q = q.Where("driver_id = ?", *f.DriverID)
	}
	if f.Unassigned {
		q = q.Where("driver_id IS NULL")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	q = q.Session(&gorm.Session{}) // reused by Count and Find

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Order
	err := q.Preload("Items").
		Order("id DESC").
		Limit(f.Limit).Offset((f.Page - 1) * f.Limit).
		Find(&out).Error
	return out, total, err
}

// UpdateStatusGuard moves the order from -> to only if it is still in
// from. extra columns (cancel_reason, payment_status) go in the same UPDATE.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus, extra map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// ClaimGuard assigns the driver only while the order is READY and nobody
// holds it.
func (r *OrderRepository) ClaimGuard(tx *gorm.DB, orderID, driverID uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", orderID, entity.StatusReady).
		Updates(map[string]any{"status": entity.StatusOnTheWay, "driver_id": driverID})
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) UpdatePaymentGuard(tx *gorm.DB, orderID uint, from entity.PaymentStatus, to entity.PaymentStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND payment_status = ?", orderID, from).
		Update("payment_status", to)
	return res.RowsAffected, res.Error
}

// ---------------- Status history ----------------

func (r *OrderRepository) AddStatusChange(tx *gorm.DB, ch *entity.OrderStatusChange) error {
	return tx.Create(ch).Error
}

func (r *OrderRepository) ListStatusChanges(tx *gorm.DB, orderID uint) ([]entity.OrderStatusChange, error) {
	var out []entity.OrderStatusChange
	err := tx.Where("order_id = ?", orderID).Order("id ASC").Find(&out).Error
	return out, err
}
