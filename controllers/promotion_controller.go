package controllers

import (
	"strconv"

	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/bennblr/food-app/pkg/resp"
	"github.com/bennblr/food-app/services"

	"github.com/gin-gonic/gin"
)

type PromotionController struct{ Svc *services.PromotionService }

func NewPromotionController(s *services.PromotionService) *PromotionController {
	return &PromotionController{Svc: s}
}

// GET /promotions?restaurantId=  (public, ไม่ส่ง restaurantId = โปรกลาง)
func (h *PromotionController) ListActive(c *gin.Context) {
	var restID *uint
	if v := c.Query("restaurantId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			resp.Error(c, apperr.ValidationFields("invalid restaurantId", map[string]string{"restaurantId": "must be a positive integer"}))
			return
		}
		u := uint(id)
		restID = &u
	}
	rows, err := h.Svc.ListActive(c.Request.Context(), restID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}
