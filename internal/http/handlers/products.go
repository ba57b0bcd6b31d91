package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/products"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/pkg/view"
)

type CatalogHandlers struct {
	repo products.Repository
}

func NewCatalogHandlers(repo products.Repository) *CatalogHandlers {
	return &CatalogHandlers{repo: repo}
}

func (h *CatalogHandlers) List(c *gin.Context) {
	page, size := pageParams(c, 24)
	res, err := h.repo.ListActive(c.Request.Context(), products.Filter{
		Category: strings.TrimSpace(c.Query("category")),
		Q:        strings.TrimSpace(c.Query("q")),
		MinHeat:  parseInt(c.Query("min_heat"), 0),
		MaxHeat:  parseInt(c.Query("max_heat"), 0),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		fail(c, err)
		return
	}

	cards := make([]view.ProductCard, 0, len(res.Items))
	for _, p := range res.Items {
		cards = append(cards, productCard(p))
	}
	c.JSON(http.StatusOK, view.NewPage(cards, page, size, res.Total))
}

func (h *CatalogHandlers) Detail(c *gin.Context) {
	p, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *CatalogHandlers) Categories(c *gin.Context) {
	cats, err := h.repo.Categories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": cats})
}

func productCard(p products.Product) view.ProductCard {
	card := view.ProductCard{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       p.Slug,
		PriceCents: p.PriceCents,
		Price:      view.MoneyFromCents(p.PriceCents, p.Currency),
		HeatLevel:  p.HeatLevel,
		Scoville:   p.Scoville,
		InStock:    p.InStock(),
		Currency:   p.Currency,
	}
	if len(p.Images) > 0 {
		card.ImageURL = p.Images[0]
	}
	if p.CompareAtCents > p.PriceCents {
		card.CompareAt = view.MoneyFromCents(p.CompareAtCents, p.Currency)
	}
	return card
}
