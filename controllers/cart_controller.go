package controllers

import (
	"github.com/bennblr/food-app/pkg/resp"
	"github.com/bennblr/food-app/services"
	"github.com/bennblr/food-app/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	snap, err := h.Svc.Get(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, snap)
}

// POST /cart
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := utils.BindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	snap, err := h.Svc.Add(c.Request.Context(), utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, snap)
}

type updateQtyReq struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// PUT /cart/:lineId  (quantity <= 0 ลบรายการ)
func (h *CartController) UpdateQty(c *gin.Context) {
	lineID, err := paramID(c, "lineId")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var body updateQtyReq
	if err := utils.BindJSON(c, &body); err != nil {
		resp.Error(c, err)
		return
	}
	snap, err := h.Svc.UpdateQuantity(c.Request.Context(), utils.CurrentUserID(c), lineID, *body.Quantity)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, snap)
}

// DELETE /cart/:lineId
func (h *CartController) RemoveItem(c *gin.Context) {
	lineID, err := paramID(c, "lineId")
	if err != nil {
		resp.Error(c, err)
		return
	}
	snap, err := h.Svc.RemoveItem(c.Request.Context(), utils.CurrentUserID(c), lineID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, snap)
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), utils.CurrentUserID(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
