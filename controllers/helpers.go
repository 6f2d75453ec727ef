package controllers

import (
	"strconv"

	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/bennblr/food-app/services"
	"github.com/bennblr/food-app/utils"

	"github.com/gin-gonic/gin"
)

func actor(c *gin.Context) services.Actor {
	return services.Actor{ID: utils.CurrentUserID(c), Role: utils.CurrentRole(c)}
}

// paramID อ่าน :id จาก path
func paramID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, apperr.ValidationFields("invalid id", map[string]string{name: "must be a positive integer"})
	}
	return uint(v), nil
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	return page, limit
}
