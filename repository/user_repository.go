package repository

import (
	"context"

	"github.com/bennblr/food-app/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository รับผิดชอบการคุยกับตาราง users ใน DB เท่านั้น
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// หาผู้ใช้จาก email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// นับจำนวน user ที่มี email ซ้ำ
func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// สร้าง user ใหม่
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// โหลด user ตาม ID
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID uint, role entity.Role) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).Update("role", role).Error
}

// LockForUpdate ล็อกแถว user จนจบ transaction: งานตะกร้ากับ checkout ของ user
// เดียวกันจะต่อคิวกัน (sqlite ไม่มี row lock, ใช้ connection เดียวแทน)
func (r *UserRepository) LockForUpdate(tx *gorm.DB, userID uint) error {
	var u entity.User
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&u, userID).Error
}
