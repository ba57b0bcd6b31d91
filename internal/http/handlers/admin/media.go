package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/media"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/pkg/view"
)

type MediaHandler struct {
	svc *media.Service
}

func NewMediaHandler(svc *media.Service) *MediaHandler {
	return &MediaHandler{svc: svc}
}

func (h *MediaHandler) List(c *gin.Context) {
	page, size := pageParams(c, 40)
	res, err := h.svc.List(c.Request.Context(), media.ListParams{
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

func (h *MediaHandler) Get(c *gin.Context) {
	it, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": it})
}

func (h *MediaHandler) Upload(c *gin.Context) {
	fh, ok := formFile(c)
	if !ok {
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	it, err := h.svc.Upload(c.Request.Context(), f, media.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		AltText:     c.PostForm("alt_text"),
		UploadedBy:  actor(c).ID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": it})
}

type altReq struct {
	AltText string `json:"alt_text" binding:"max=500"`
}

func (h *MediaHandler) UpdateAlt(c *gin.Context) {
	var in altReq
	if !bindJSON(c, &in) {
		return
	}
	it, err := h.svc.UpdateAlt(c.Request.Context(), c.Param("id"), in.AltText)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": it})
}

func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
