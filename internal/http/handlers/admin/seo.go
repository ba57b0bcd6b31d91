package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/seo"
)

type SEOHandler struct {
	repo *seo.Repo
}

func NewSEOHandler(repo *seo.Repo) *SEOHandler {
	return &SEOHandler{repo: repo}
}

type seoReq struct {
	PagePath    string `json:"page_path" binding:"required,max=255"`
	Title       string `json:"title" binding:"max=255"`
	Description string `json:"description" binding:"max=500"`
	Keywords    string `json:"keywords" binding:"max=500"`
	OGImageURL  string `json:"og_image_url" binding:"max=500"`
}

func (h *SEOHandler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if items == nil {
		items = []seo.Metadata{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *SEOHandler) Get(c *gin.Context) {
	m, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seo": m})
}

// Upsert creates or replaces the metadata for page_path.
func (h *SEOHandler) Upsert(c *gin.Context) {
	var in seoReq
	if !bindJSON(c, &in) {
		return
	}
	m, err := h.repo.Upsert(c.Request.Context(), seo.Input{
		PagePath:    in.PagePath,
		Title:       in.Title,
		Description: in.Description,
		Keywords:    in.Keywords,
		OGImageURL:  in.OGImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seo": m})
}

func (h *SEOHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
