package admin

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/hero"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/apperr"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/storage"
)

type HeroHandler struct {
	repo  *hero.Repo
	store storage.Storage
	log   *slog.Logger
}

func NewHeroHandler(repo *hero.Repo, store storage.Storage, l *slog.Logger) *HeroHandler {
	return &HeroHandler{repo: repo, store: store, log: l}
}

type heroReq struct {
	Title    string `json:"title" binding:"required,max=255"`
	Subtitle string `json:"subtitle" binding:"max=500"`
	ImageURL string `json:"image_url" binding:"required,max=500"`
	LinkURL  string `json:"link_url" binding:"max=500"`
	Position int    `json:"position"`
	Active   *bool  `json:"active"`
}

func (r heroReq) input() hero.Input {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return hero.Input{
		Title:    r.Title,
		Subtitle: r.Subtitle,
		ImageURL: r.ImageURL,
		LinkURL:  r.LinkURL,
		Position: r.Position,
		Active:   active,
	}
}

func (h *HeroHandler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if items == nil {
		items = []hero.Image{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *HeroHandler) Get(c *gin.Context) {
	img, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero_image": img})
}

func (h *HeroHandler) Create(c *gin.Context) {
	var in heroReq
	if !bindJSON(c, &in) {
		return
	}
	img, err := h.repo.Create(c.Request.Context(), in.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"hero_image": img})
}

func (h *HeroHandler) Update(c *gin.Context) {
	var in heroReq
	if !bindJSON(c, &in) {
		return
	}
	img, err := h.repo.Update(c.Request.Context(), c.Param("id"), in.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero_image": img})
}

func (h *HeroHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	img, err := h.repo.Delete(ctx, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	h.dropObject(c, img.StorageKey)
	c.Status(http.StatusNoContent)
}

// Upload stores an image and returns its URL. With hero_id set the image
// replaces that banner's picture and the previous object is removed.
func (h *HeroHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	heroID := strings.TrimSpace(c.PostForm("hero_id"))
	if heroID != "" {
		if _, err := h.repo.Get(ctx, heroID); err != nil {
			fail(c, err)
			return
		}
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
	if heroID == "" {
		c.JSON(http.StatusCreated, gin.H{"url": put.URL, "key": put.Key})
		return
	}

	img, oldKey, err := h.repo.SetImage(ctx, heroID, put.URL, put.Key)
	if err != nil {
		h.dropObject(c, put.Key)
		fail(c, err)
		return
	}
	h.dropObject(c, oldKey)
	c.JSON(http.StatusCreated, gin.H{"url": put.URL, "key": put.Key, "hero_image": img})
}

func (h *HeroHandler) dropObject(c *gin.Context, key string) {
	if key == "" {
		return
	}
	if err := h.store.Delete(c.Request.Context(), key); err != nil {
		h.log.WarnContext(c.Request.Context(), "storage_delete_failed", "key", key, "err", err)
	}
}
