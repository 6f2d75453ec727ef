package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/resp"
	"github.com/bennblr/food-app/services"
	"github.com/bennblr/food-app/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Svc *services.OrderService
	QR  services.QRGenerator
}

func NewOrderController(s *services.OrderService, qr services.QRGenerator) *OrderController {
	return &OrderController{Svc: s, QR: qr}
}

// POST /orders  (checkout จากตะกร้า)
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CheckoutIn
	if err := utils.BindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	order, err := oc.Svc.CreateOrder(c.Request.Context(), utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders?status=&page=&limit=
func (oc *OrderController) ListMine(c *gin.Context) {
	page, limit := pageParams(c)
	out, err := oc.Svc.ListForUser(c.Request.Context(), utils.CurrentUserID(c),
		entity.OrderStatus(c.Query("status")), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	order, err := oc.Svc.Get(c.Request.Context(), actor(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /orders/:id/history
func (oc *OrderController) History(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	rows, err := oc.Svc.History(c.Request.Context(), actor(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /orders/:id/qrcode  → image/png
func (oc *OrderController) QRCode(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	order, err := oc.Svc.Get(c.Request.Context(), actor(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	png, err := oc.QR.Generate(order)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

type cancelReq struct {
	Reason string `json:"reason" binding:"max=500"`
}

// POST /orders/:id/cancel  body ไม่บังคับ
func (oc *OrderController) Cancel(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var body cancelReq
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		resp.Error(c, utils.ValidationError(err))
		return
	}
	order, err := oc.Svc.Cancel(c.Request.Context(), actor(c), id, body.Reason)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}
