package admin

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/orders"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/pkg/view"
)

type OrdersHandler struct {
	repo *orders.Repo
	svc  *orders.AdminService
}

func NewOrdersHandler(repo *orders.Repo, svc *orders.AdminService) *OrdersHandler {
	return &OrdersHandler{repo: repo, svc: svc}
}

func (h *OrdersHandler) List(c *gin.Context) {
	page, size := pageParams(c, 30)
	res, err := h.repo.AdminList(c.Request.Context(), orders.AdminListParams{
		Q:        strings.TrimSpace(c.Query("q")),
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]view.OrderListItem, 0, len(res.Items))
	for _, o := range res.Items {
		items = append(items, view.OrderListItem{
			ID:            o.ID,
			Number:        o.OrderNumber,
			CreatedAt:     o.CreatedAt,
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			Email:         o.Email,
			TotalCents:    o.TotalCents,
			Total:         view.MoneyFromCents(o.TotalCents, o.Currency),
			Currency:      o.Currency,
			ItemCount:     len(o.Items),
		})
	}
	c.JSON(http.StatusOK, view.NewPage(items, page, size, res.Total))
}

func (h *OrdersHandler) Detail(c *gin.Context) {
	o, ev, err := h.repo.AdminGetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o, "events": eventsView(ev)})
}

type updateOrderReq struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
	Note          string  `json:"note" binding:"max=1000"`
}

func (h *OrdersHandler) Update(c *gin.Context) {
	var in updateOrderReq
	if !bindJSON(c, &in) {
		return
	}
	o, ev, err := h.svc.Update(c.Request.Context(), orders.UpdateInput{
		OrderID:       c.Param("id"),
		ActorUserID:   actor(c).ID,
		Status:        in.Status,
		PaymentStatus: in.PaymentStatus,
		Note:          in.Note,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o, "events": eventsView(ev)})
}

func (h *OrdersHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func eventsView(ev []orders.OrderEvent) []view.AdminOrderEvent {
	out := make([]view.AdminOrderEvent, 0, len(ev))
	for _, e := range ev {
		item := view.AdminOrderEvent{
			Field:       e.Field,
			From:        e.FromValue,
			To:          e.ToValue,
			ActorUserID: e.ActorUserID,
			At:          e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if e.Note != nil {
			item.Note = *e.Note
		}
		out = append(out, item)
	}
	return out
}
