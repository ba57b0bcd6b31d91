package admin

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/products"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/apperr"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/storage"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/pkg/view"
)

type ProductsHandler struct {
	repo  *products.Repo
	store storage.Storage
	log   *slog.Logger
}

func NewProductsHandler(repo *products.Repo, store storage.Storage, l *slog.Logger) *ProductsHandler {
	return &ProductsHandler{repo: repo, store: store, log: l}
}

type productReq struct {
	SKU             string   `json:"sku" binding:"required,max=64"`
	Name            string   `json:"name" binding:"required,max=255"`
	Slug            string   `json:"slug" binding:"max=255"`
	Description     string   `json:"description"`
	PriceCents      int      `json:"price_cents" binding:"min=0"`
	CompareAtCents  int      `json:"compare_at_cents" binding:"min=0"`
	Currency        string   `json:"currency" binding:"omitempty,len=3"`
	StockQuantity   int      `json:"stock_quantity" binding:"min=0"`
	HeatLevel       int      `json:"heat_level"`
	Scoville        int      `json:"scoville" binding:"min=0"`
	Status          string   `json:"status" binding:"omitempty,oneof=draft active archived"`
	Images          []string `json:"images"`
	MetaTitle       string   `json:"meta_title" binding:"max=255"`
	MetaDescription string   `json:"meta_description" binding:"max=500"`
	CategoryIDs     []string `json:"category_ids"`
}

func (r productReq) input() products.Input {
	return products.Input{
		SKU:             r.SKU,
		Name:            r.Name,
		Slug:            r.Slug,
		Description:     r.Description,
		PriceCents:      r.PriceCents,
		CompareAtCents:  r.CompareAtCents,
		Currency:        r.Currency,
		StockQuantity:   r.StockQuantity,
		HeatLevel:       r.HeatLevel,
		Scoville:        r.Scoville,
		Status:          r.Status,
		Images:          r.Images,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		CategoryIDs:     r.CategoryIDs,
	}
}

func (h *ProductsHandler) List(c *gin.Context) {
	page, size := pageParams(c, 30)
	res, err := h.repo.List(c.Request.Context(), products.AdminListParams{
		Q:        strings.TrimSpace(c.Query("q")),
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

func (h *ProductsHandler) Get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var in productReq
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.repo.Create(c.Request.Context(), in.input())
	if err != nil {
		fail(c, err)
		return
	}
	h.log.InfoContext(c.Request.Context(), "product_created", "product_id", p.ID, "actor_id", actor(c).ID)
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

func (h *ProductsHandler) Update(c *gin.Context) {
	var in productReq
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.repo.Update(c.Request.Context(), c.Param("id"), in.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	h.log.InfoContext(c.Request.Context(), "product_deleted", "product_id", id, "actor_id", actor(c).ID)
	c.Status(http.StatusNoContent)
}

// UploadImage stores a multipart image and appends its URL to the gallery.
func (h *ProductsHandler) UploadImage(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.repo.Get(ctx, id); err != nil {
		fail(c, err)
		return
	}

	fh, ok := formFile(c)
	if !ok {
		return
	}
	ct, err := storage.CheckImage(fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
	if err != nil {
		fail(c, err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	put, err := h.store.Put(ctx, f, storage.PutInput{Filename: fh.Filename, ContentType: ct, Size: fh.Size})
	if err != nil {
		fail(c, apperr.UnavailableErr("Upload failed. Please try again.", err))
		return
	}
	p, err := h.repo.AddImage(ctx, id, put.URL)
	if err != nil {
		if derr := h.store.Delete(ctx, put.Key); derr != nil {
			h.log.WarnContext(ctx, "orphaned_upload", "key", put.Key, "err", derr)
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": put.URL, "product": p})
}

func (h *ProductsHandler) RemoveImage(c *gin.Context) {
	url := strings.TrimSpace(c.Query("url"))
	if url == "" {
		fail(c, apperr.InvalidErr("url is required.", map[string]string{"url": "This field is required."}))
		return
	}
	p, err := h.repo.RemoveImage(c.Request.Context(), c.Param("id"), url)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

type categoryReq struct {
	Name        string `json:"name" binding:"required,max=120"`
	Slug        string `json:"slug" binding:"max=120"`
	Description string `json:"description" binding:"max=500"`
}

func (h *ProductsHandler) Categories(c *gin.Context) {
	cats, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": cats})
}

func (h *ProductsHandler) CreateCategory(c *gin.Context) {
	var in categoryReq
	if !bindJSON(c, &in) {
		return
	}
	cat, err := h.repo.CreateCategory(c.Request.Context(), in.Name, in.Slug, in.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

func (h *ProductsHandler) UpdateCategory(c *gin.Context) {
	var in categoryReq
	if !bindJSON(c, &in) {
		return
	}
	cat, err := h.repo.UpdateCategory(c.Request.Context(), c.Param("id"), in.Name, in.Slug, in.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat})
}

func (h *ProductsHandler) DeleteCategory(c *gin.Context) {
	if err := h.repo.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
