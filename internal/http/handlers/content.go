package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/blog"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/hero"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/seo"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/apperr"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/pkg/view"
)

// ContentHandlers serve the public blog, hero banners and SEO lookups.
type ContentHandlers struct {
	blog *blog.Repo
	hero *hero.Repo
	seo  *seo.Repo
}

func NewContentHandlers(b *blog.Repo, h *hero.Repo, s *seo.Repo) *ContentHandlers {
	return &ContentHandlers{blog: b, hero: h, seo: s}
}

func (h *ContentHandlers) BlogList(c *gin.Context) {
	page, size := pageParams(c, 12)
	res, err := h.blog.ListPublished(c.Request.Context(), blog.ListParams{
		Kind:     strings.TrimSpace(c.Query("kind")),
		Q:        strings.TrimSpace(c.Query("q")),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.NewPage(res.Items, page, size, res.Total))
}

func (h *ContentHandlers) BlogDetail(c *gin.Context) {
	p, err := h.blog.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": p})
}

func (h *ContentHandlers) HeroList(c *gin.Context) {
	items, err := h.hero.ListActive(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if items == nil {
		items = []hero.Image{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ContentHandlers) SEO(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		fail(c, apperr.InvalidErr("path is required.", map[string]string{"path": "This field is required."}))
		return
	}
	m, err := h.seo.GetByPath(c.Request.Context(), path)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
