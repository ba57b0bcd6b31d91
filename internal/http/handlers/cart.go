package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/cart"
)

type CartHandlers struct {
	svc *cart.Service
}

func NewCartHandlers(svc *cart.Service) *CartHandlers {
	return &CartHandlers{svc: svc}
}

func (h *CartHandlers) Get(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	vm, err := h.svc.BuildCartPageForUser(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vm)
}

type addItemReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Qty       int    `json:"qty" binding:"required,min=1,max=99"`
}

func (h *CartHandlers) Add(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	var in addItemReq
	if !bindJSON(c, &in) {
		return
	}
	vm, err := h.svc.Add(c.Request.Context(), u.ID, in.ProductID, in.Qty)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vm)
}

type updateItemReq struct {
	Qty *int `json:"qty" binding:"required,min=0,max=99"`
}

func (h *CartHandlers) Update(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	var in updateItemReq
	if !bindJSON(c, &in) {
		return
	}
	vm, err := h.svc.SetQty(c.Request.Context(), u.ID, c.Param("product_id"), *in.Qty)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vm)
}

func (h *CartHandlers) Remove(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	vm, err := h.svc.Remove(c.Request.Context(), u.ID, c.Param("product_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vm)
}
