package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/orders"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/products"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
)

const (
	lowStockThreshold = 5
	lowStockLimit     = 10
)

type DashboardHandler struct {
	products *products.Repo
	orders   *orders.Repo
	users    *users.Repo
}

func NewDashboardHandler(p *products.Repo, o *orders.Repo, u *users.Repo) *DashboardHandler {
	return &DashboardHandler{products: p, orders: o, users: u}
}

type dashboard struct {
	Products      int64              `json:"products"`
	OrdersByState map[string]int64   `json:"orders_by_status"`
	UsersByRole   map[string]int64   `json:"users_by_role"`
	LowStock      []products.Product `json:"low_stock"`
}

func (h *DashboardHandler) Get(c *gin.Context) {
	var (
		out    dashboard
		g, ctx = errgroup.WithContext(c.Request.Context())
	)
	g.Go(func() (err error) {
		out.Products, err = h.products.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.OrdersByState, err = h.orders.CountByStatus(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.UsersByRole, err = h.users.CountByRole(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.LowStock, err = h.products.LowStock(ctx, lowStockThreshold, lowStockLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		fail(c, err)
		return
	}
	if out.LowStock == nil {
		out.LowStock = []products.Product{}
	}
	c.JSON(http.StatusOK, out)
}
