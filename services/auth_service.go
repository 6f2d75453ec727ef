package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/bennblr/food-app/repository"
	"github.com/bennblr/food-app/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService จัดการ business logic ของการ login/register
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

type RegisterIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"max=32"`
}

type LoginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register สร้าง user ใหม่ (role USER) ถ้า email ซ้ำจะ error
func (s *AuthService) Register(ctx context.Context, in *RegisterIn) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	count, err := s.userRepo.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.New(apperr.Conflict, "email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(in.Name),
		Phone:    strings.TrimSpace(in.Phone),
		Role:     entity.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "email already registered")
		}
		return nil, err
	}
	return user, nil
}

// Login ตรวจสอบ user + สร้าง JWT
func (s *AuthService) Login(ctx context.Context, in *LoginIn) (string, *entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return u, nil
}

type SetRoleIn struct {
	Role entity.Role `json:"role" binding:"required"`
}

// SetRole is the admin user-management hook that turns accounts into
// drivers, restaurant staff or editors. Only APP_OWNER may grant APP_OWNER
// or change the role of an existing APP_OWNER.
func (s *AuthService) SetRole(ctx context.Context, actor Actor, userID uint, role entity.Role) (*entity.User, error) {
	if !actor.Role.IsAppAdmin() {
		return nil, apperr.New(apperr.Forbidden, "admin only")
	}
	if !role.Valid() {
		return nil, apperr.ValidationFields("invalid role", map[string]string{"role": "unknown role"})
	}
	if role == entity.RoleAppOwner && actor.Role != entity.RoleAppOwner {
		return nil, apperr.New(apperr.Forbidden, "only APP_OWNER can grant APP_OWNER")
	}

	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	if target.Role == entity.RoleAppOwner && actor.Role != entity.RoleAppOwner {
		return nil, apperr.New(apperr.Forbidden, "only APP_OWNER can change an APP_OWNER's role")
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, userID)
}
