package controllers

import (
	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/resp"
	"github.com/bennblr/food-app/services"
	"github.com/bennblr/food-app/utils"

	"github.com/gin-gonic/gin"
)

type DriverController struct {
	Drivers *services.DriverService
	Orders  *services.OrderService
}

func NewDriverController(d *services.DriverService, o *services.OrderService) *DriverController {
	return &DriverController{Drivers: d, Orders: o}
}

// GET /driver/available-orders
func (h *DriverController) Available(c *gin.Context) {
	items, err := h.Drivers.ListAvailable(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /driver/orders?status=
func (h *DriverController) Mine(c *gin.Context) {
	items, err := h.Drivers.ListMine(c.Request.Context(), utils.CurrentUserID(c), entity.OrderStatus(c.Query("status")))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /driver/orders/:id/accept
func (h *DriverController) Accept(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	order, err := h.Orders.Claim(c.Request.Context(), actor(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// POST /driver/orders/:id/deliver
func (h *DriverController) Deliver(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	order, err := h.Orders.Deliver(c.Request.Context(), actor(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}
