package admin

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/apperr"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/pkg/view"
)

type UsersHandler struct {
	repo *users.Repo
	bulk *users.BulkService
}

func NewUsersHandler(repo *users.Repo, bulk *users.BulkService) *UsersHandler {
	return &UsersHandler{repo: repo, bulk: bulk}
}

func (h *UsersHandler) List(c *gin.Context) {
	page, size := pageParams(c, 30)
	res, err := h.repo.List(c.Request.Context(), users.ListParams{
		Q:        strings.TrimSpace(c.Query("q")),
		Role:     strings.TrimSpace(c.Query("role")),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.NewPage(res.Items, page, size, res.Total))
}

func (h *UsersHandler) Get(c *gin.Context) {
	u, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type roleReq struct {
	Role string `json:"role" binding:"required"`
}

// SetRole goes through the bulk path so the single-user change obeys the
// same rank rules.
func (h *UsersHandler) SetRole(c *gin.Context) {
	var in roleReq
	if !bindJSON(c, &in) {
		return
	}
	role, ok := access.Parse(in.Role)
	if !ok {
		fail(c, users.ErrInvalidRole)
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.bulk.ChangeRole(ctx, actor(c), []string{id}, role); err != nil {
		fail(c, err)
		return
	}
	u, err := h.repo.Get(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type wholesaleReq struct {
	Approved *bool `json:"approved" binding:"required"`
}

func (h *UsersHandler) SetWholesale(c *gin.Context) {
	var in wholesaleReq
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.repo.SetWholesale(c.Request.Context(), c.Param("id"), *in.Approved)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type loyaltyReq struct {
	Points *int `json:"points" binding:"required"`
}

func (h *UsersHandler) SetLoyalty(c *gin.Context) {
	var in loyaltyReq
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.repo.SetLoyaltyPoints(c.Request.Context(), c.Param("id"), *in.Points)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *UsersHandler) Delete(c *gin.Context) {
	if _, err := h.bulk.Delete(c.Request.Context(), actor(c), []string{c.Param("id")}); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type bulkReq struct {
	Action  string   `json:"action" binding:"omitempty,oneof=delete role export email"`
	UserIDs []string `json:"user_ids"`
	Role    string   `json:"role"`
	Subject string   `json:"subject" binding:"max=200"`
	Body    string   `json:"body" binding:"max=20000"`
}

// Bulk dispatches on the action field; the dedicated endpoints below call
// the same code with the action fixed.
func (h *UsersHandler) Bulk(c *gin.Context) {
	var in bulkReq
	if !bindJSON(c, &in) {
		return
	}
	h.runBulk(c, in)
}

func (h *UsersHandler) bulkAction(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in bulkReq
		if !bindJSON(c, &in) {
			return
		}
		in.Action = action
		h.runBulk(c, in)
	}
}

func (h *UsersHandler) BulkDelete() gin.HandlerFunc { return h.bulkAction("delete") }
func (h *UsersHandler) BulkRole() gin.HandlerFunc { return h.bulkAction("role") }
func (h *UsersHandler) Export() gin.HandlerFunc { return h.bulkAction("export") }
func (h *UsersHandler) Email() gin.HandlerFunc { return h.bulkAction("email") }

func (h *UsersHandler) runBulk(c *gin.Context, in bulkReq) {
	ctx := c.Request.Context()
	act := actor(c)

	switch in.Action {
	case "delete":
		n, err := h.bulk.Delete(ctx, act, in.UserIDs)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": n})

	case "role":
		role, ok := access.Parse(in.Role)
		if !ok {
			fail(c, users.ErrInvalidRole)
			return
		}
		n, err := h.bulk.ChangeRole(ctx, act, in.UserIDs, role)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": n, "role": role})

	case "export":
		var buf bytes.Buffer
		if _, err := h.bulk.ExportCSV(ctx, in.UserIDs, &buf); err != nil {
			fail(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="users.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())

	case "email":
		fields := map[string]string{}
		if strings.TrimSpace(in.Subject) == "" {
			fields["subject"] = "This field is required."
		}
		if strings.TrimSpace(in.Body) == "" {
			fields["body"] = "This field is required."
		}
		if len(fields) > 0 {
			fail(c, apperr.InvalidErr("Please fix the highlighted fields.", fields))
			return
		}
		res, err := h.bulk.Email(ctx, act, in.UserIDs, users.EmailInput{Subject: in.Subject, Body: in.Body})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)

	default:
		fail(c, apperr.InvalidErr("Unknown bulk action.", map[string]string{"action": "Choose delete, role, export or email."}))
	}
}
