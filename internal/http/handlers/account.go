package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/orders"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/apperr"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/pkg/view"
)

type AccountHandlers struct {
	users  *users.Repo
	orders *orders.Repo
}

func NewAccountHandlers(u *users.Repo, o *orders.Repo) *AccountHandlers {
	return &AccountHandlers{users: u, orders: o}
}

func (h *AccountHandlers) Orders(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	page, size := pageParams(c, 20)
	res, err := h.orders.ListByUser(c.Request.Context(), orders.ListByUserParams{
		UserID:   u.ID,
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.NewPage(res.Items, page, size, res.Total))
}

func (h *AccountHandlers) Order(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	o, err := h.orders.GetForUser(c.Request.Context(), c.Param("id"), u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

func (h *AccountHandlers) RequestWholesale(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	usr, err := h.users.RequestWholesale(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": usr})
}

// Role reports the stored role of a user. Users may read their own; staff
// may read anyone's.
func (h *AccountHandlers) Role(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	if id != u.ID {
		own, err := h.users.Role(ctx, u.ID)
		if err != nil {
			fail(c, err)
			return
		}
		if !access.IsAdmin(own) {
			fail(c, apperr.ForbiddenErr("You can only view your own role."))
			return
		}
	}

	role, err := h.users.Role(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":  id,
		"role":     role,
		"is_admin": access.IsAdmin(role),
	})
}
