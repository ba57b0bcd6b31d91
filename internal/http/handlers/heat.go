package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http/middleware"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/heat"
)

type HeatHandlers struct {
	svc *heat.Service
}

func NewHeatHandlers(svc *heat.Service) *HeatHandlers {
	return &HeatHandlers{svc: svc}
}

func (h *HeatHandlers) Quiz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": heat.Questions})
}

type analyzeReq struct {
	Answers heat.Answers `json:"answers" binding:"required"`
}

// Analyze works for guests too; signed-in users get the profile attached to
// their account.
func (h *HeatHandlers) Analyze(c *gin.Context) {
	var in analyzeReq
	if !bindJSON(c, &in) {
		return
	}
	userID := ""
	if u, ok := middleware.CurrentUser(c); ok {
		userID = u.ID
	}
	res, err := h.svc.Analyze(c.Request.Context(), userID, in.Answers)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *HeatHandlers) Latest(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	p, err := h.svc.Latest(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}
