package middlewares

import (
	"context"
	"errors"
	"strings"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/resp"
	"github.com/bennblr/food-app/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserLoader โหลด user ปัจจุบันจาก DB (role ใน token อาจเก่าแล้ว)
type UserLoader interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// ใช้ตรวจ token และ (ถ้ามี) บังคับ role ตามค่าใน DB
func AuthMiddleware(secret string, users UserLoader, requiredRoles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "missing or invalid token")
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
		if err != nil || claims.UserID == 0 {
			resp.Unauthorized(c, "invalid token")
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.Unauthorized(c, "user no longer exists")
			return
		}
		if err != nil {
			resp.Error(c, err)
			return
		}

		c.Set(utils.CtxUserID, user.ID)
		c.Set(utils.CtxRole, user.Role)

		if len(requiredRoles) > 0 && !hasRole(user.Role, requiredRoles) {
			resp.Forbidden(c, "forbidden")
			return
		}
		c.Next()
	}
}

// AdminOnly lets APP_OWNER and APP_EDITOR through.
func AdminOnly(secret string, users UserLoader) gin.HandlerFunc {
	return AuthMiddleware(secret, users, entity.RoleAppOwner, entity.RoleAppEditor)
}

func hasRole(role entity.Role, allowed []entity.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
