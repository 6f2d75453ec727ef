package utils

import (
	"github.com/bennblr/food-app/entity"
	"github.com/gin-gonic/gin"
)

// keys set by AuthMiddleware (role มาจาก DB ไม่ใช่ token)
const (
	CtxUserID = "userId"
	CtxRole   = "role"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(CtxUserID)
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

func CurrentRole(c *gin.Context) entity.Role {
	if v, ok := c.Get(CtxRole); ok {
		switch r := v.(type) {
		case entity.Role:
			return r
		case string:
			return entity.Role(r)
		}
	}
	return ""
}
