package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/checkout"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/orders"
)

type CheckoutHandlers struct {
	svc *checkout.Service
}

func NewCheckoutHandlers(svc *checkout.Service) *CheckoutHandlers {
	return &CheckoutHandlers{svc: svc}
}

type addressReq struct {
	Name       string `json:"name" binding:"required,max=200"`
	Line1      string `json:"line1" binding:"required,max=255"`
	Line2      string `json:"line2" binding:"max=255"`
	City       string `json:"city" binding:"required,max=120"`
	Region     string `json:"region" binding:"max=120"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,len=2"`
	Phone      string `json:"phone" binding:"max=32"`
}

func (a addressReq) toAddress() orders.Address {
	return orders.Address{
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}

type checkoutReq struct {
	ShippingAddress addressReq  `json:"shipping_address" binding:"required"`
	BillingAddress  *addressReq `json:"billing_address"`
	Notes           string      `json:"notes" binding:"max=1000"`
}

func (h *CheckoutHandlers) Place(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	var in checkoutReq
	if !bindJSON(c, &in) {
		return
	}

	po := checkout.PlaceOrderInput{
		UserID:          u.ID,
		ShippingAddress: in.ShippingAddress.toAddress(),
		Notes:           in.Notes,
	}
	if in.BillingAddress != nil {
		b := in.BillingAddress.toAddress()
		po.BillingAddress = &b
	}

	res, err := h.svc.PlaceOrder(c.Request.Context(), po)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": res.Order, "summary": res.Summary})
}
