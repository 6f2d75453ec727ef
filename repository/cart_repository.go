package repository

import (
	"errors"

	"github.com/bennblr/food-app/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// รายการในตะกร้าของ user พร้อมเมนู (ว่าง = ไม่มีตะกร้า)
func (r *CartRepository) ListByUser(tx *gorm.DB, userID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := tx.Where("user_id = ?", userID).
		Preload("Dish").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// CurrentRestaurantID returns the restaurant the cart is locked to, or 0
// when the cart is empty.
func (r *CartRepository) CurrentRestaurantID(tx *gorm.DB, userID uint) (uint, error) {
	var row entity.CartItem
	err := tx.Select("restaurant_id").Where("user_id = ?", userID).Limit(1).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return row.RestaurantID, err
}

// เพิ่มหรือรวม line: เมนูเดียวกัน → บวกจำนวน, note ใหม่ทับของเดิม
func (r *CartRepository) UpsertItem(tx *gorm.DB, row *entity.CartItem) error {
	var exist entity.CartItem
	err := tx.Where("user_id = ? AND dish_id = ?", row.UserID, row.DishID).First(&exist).Error
	if err == nil {
		updates := map[string]any{"quantity": gorm.Expr("quantity + ?", row.Quantity)}
		if row.Notes != "" {
			updates["notes"] = row.Notes
		}
		if err := tx.Model(&exist).Updates(updates).Error; err != nil {
			return err
		}
		row.ID = exist.ID
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(row).Error
}

// UpdateQty sets the quantity of one of the user's lines; qty <= 0 removes
// it. Returns rows affected (0 = line not in this user's cart).
func (r *CartRepository) UpdateQty(tx *gorm.DB, userID, itemID uint, qty int) (int64, error) {
	if qty <= 0 {
		return r.RemoveItem(tx, userID, itemID)
	}
	res := tx.Model(&entity.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", qty)
	return res.RowsAffected, res.Error
}

// hard delete: the (user_id, dish_id) index must accept the dish again
func (r *CartRepository) RemoveItem(tx *gorm.DB, userID, itemID uint) (int64, error) {
	res := tx.Unscoped().
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *CartRepository) ClearCart(tx *gorm.DB, userID uint) error {
	return tx.Unscoped().Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error
}

// DeleteItems ลบเฉพาะ line ที่ระบุ (checkout ลบเฉพาะที่อ่านไปสั่งแล้ว)
func (r *CartRepository) DeleteItems(tx *gorm.DB, userID uint, itemIDs []uint) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	res := tx.Unscoped().
		Where("user_id = ? AND id IN ?", userID, itemIDs).
		Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}
