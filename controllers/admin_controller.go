package controllers

import (
	"strconv"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/bennblr/food-app/pkg/resp"
	"github.com/bennblr/food-app/services"
	"github.com/bennblr/food-app/utils"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Orders *services.OrderService
	Auth   *services.AuthService
}

func NewAdminController(o *services.OrderService, a *services.AuthService) *AdminController {
	return &AdminController{Orders: o, Auth: a}
}

// GET /admin/orders?status=&driverId=&page=&limit=
func (ac *AdminController) ListOrders(c *gin.Context) {
	page, limit := pageParams(c)

	var driverID *uint
	if v := c.Query("driverId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			resp.Error(c, apperr.ValidationFields("invalid driverId", map[string]string{"driverId": "must be a positive integer"}))
			return
		}
		d := uint(id)
		driverID = &d
	}

	out, err := ac.Orders.ListAll(c.Request.Context(), entity.OrderStatus(c.Query("status")), driverID, page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// PUT /admin/orders/:id/status  (override)
func (ac *AdminController) UpdateStatus(c *gin.Context) {
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
	order, err := ac.Orders.UpdateStatus(c.Request.Context(), actor(c), id, body.Status, body.Reason)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// POST /admin/orders/:id/payment
func (ac *AdminController) ReconcilePayment(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var body services.ReconcileIn
	if err := utils.BindJSON(c, &body); err != nil {
		resp.Error(c, err)
		return
	}
	order, err := ac.Orders.ReconcilePayment(c.Request.Context(), actor(c), id, body.PaymentStatus)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// PUT /admin/users/:id/role
func (ac *AdminController) SetRole(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var body services.SetRoleIn
	if err := utils.BindJSON(c, &body); err != nil {
		resp.Error(c, err)
		return
	}
	user, err := ac.Auth.SetRole(c.Request.Context(), actor(c), id, body.Role)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}
