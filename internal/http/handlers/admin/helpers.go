package admin

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http/errmap"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http/middleware"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http/validation"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/apperr"
)

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func pageParams(c *gin.Context, def int) (int, int) {
	page := parseInt(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	size := parseInt(c.Query("page_size"), def)
	if size < 1 || size > 100 {
		size = def
	}
	return page, size
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Please fix the highlighted fields.", validation.FromBindError(err, dst)))
		return false
	}
	return true
}

func fail(c *gin.Context, err error) {
	middleware.Fail(c, errmap.From(err))
}

// actor is the staff member behind the request, with the role the guard
// just verified rather than the one cached in the session.
func actor(c *gin.Context) users.Actor {
	u, _ := middleware.CurrentUser(c)
	return users.Actor{ID: u.ID, Role: middleware.VerifiedRole(c)}
}

// formFile reads the multipart "file" field.
func formFile(c *gin.Context) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, apperr.InvalidErr("Choose a file to upload.", map[string]string{"file": "This field is required."}))
		return nil, false
	}
	return fh, true
}
