package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http/errmap"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http/middleware"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http/validation"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/apperr"
)

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// bindJSON binds and validates the body; on failure the request is aborted
// with field errors.
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

// mustUser returns the signed-in user. Routes using it sit behind
// RequireAuth, so a miss is a wiring bug answered with 401.
func mustUser(c *gin.Context) (middleware.ContextUser, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Please sign in to continue."))
	}
	return u, ok
}

// pageParams reads page and page_size with the same clamping the repos use.
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
