package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/blog"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/pkg/view"
)

type BlogHandler struct {
	repo *blog.Repo
}

func NewBlogHandler(repo *blog.Repo) *BlogHandler {
	return &BlogHandler{repo: repo}
}

type postReq struct {
	Title           string `json:"title" binding:"required,max=255"`
	Slug            string `json:"slug" binding:"max=255"`
	Kind            string `json:"kind" binding:"omitempty,oneof=article recipe"`
	Excerpt         string `json:"excerpt" binding:"max=500"`
	Body            string `json:"body"`
	CoverImageURL   string `json:"cover_image_url" binding:"max=500"`
	Status          string `json:"status" binding:"omitempty,oneof=draft published"`
	MetaTitle       string `json:"meta_title" binding:"max=255"`
	MetaDescription string `json:"meta_description" binding:"max=500"`
}

func (r postReq) input() blog.Input {
	return blog.Input{
		Title:           r.Title,
		Slug:            r.Slug,
		Kind:            r.Kind,
		Excerpt:         r.Excerpt,
		Body:            r.Body,
		CoverImageURL:   r.CoverImageURL,
		Status:          r.Status,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
	}
}

func (h *BlogHandler) List(c *gin.Context) {
	page, size := pageParams(c, 30)
	res, err := h.repo.List(c.Request.Context(), blog.ListParams{
		Q:        strings.TrimSpace(c.Query("q")),
		Kind:     strings.TrimSpace(c.Query("kind")),
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

func (h *BlogHandler) Get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": p})
}

func (h *BlogHandler) Create(c *gin.Context) {
	var in postReq
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.repo.Create(c.Request.Context(), actor(c).ID, in.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": p})
}

func (h *BlogHandler) Update(c *gin.Context) {
	var in postReq
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.repo.Update(c.Request.Context(), c.Param("id"), in.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": p})
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
