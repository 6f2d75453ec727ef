// controllers/restaurant_order_controller.go
package controllers

import (
	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/resp"
	"github.com/bennblr/food-app/services"
	"github.com/bennblr/food-app/utils"

	"github.com/gin-gonic/gin"
)

// RestaurantOrderController is the kitchen side: owners and employees.
type RestaurantOrderController struct {
	Svc *services.OrderService
}

func NewRestaurantOrderController(s *services.OrderService) *RestaurantOrderController {
	return &RestaurantOrderController{Svc: s}
}

type statusReq struct {
	Status entity.OrderStatus `json:"status" binding:"required,orderstatus"`
	Reason string             `json:"reason" binding:"max=500"`
}

// GET /restaurant/orders?status=
func (h *RestaurantOrderController) List(c *gin.Context) {
	page, limit := pageParams(c)
	out, err := h.Svc.ListForStaff(c.Request.Context(), actor(c),
		entity.OrderStatus(c.Query("status")), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// PUT /restaurant/orders/:id/status
func (h *RestaurantOrderController) UpdateStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var body statusReq
	if err := utils.BindJSON(c, &body); err != nil {
		resp.Error(c, err)
		return
	}
	order, err := h.Svc.UpdateStatus(c.Request.Context(), actor(c), id, body.Status, body.Reason)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}
