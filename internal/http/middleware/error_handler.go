package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/apperr"
)

// WantsJSON is false only for browser navigations outside /api/.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	accept := c.GetHeader("Accept")
	if strings.Contains(accept, "application/json") {
		return true
	}
	return !strings.Contains(accept, "text/html")
}

func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the last error recorded with Fail, unless the handler
// already wrote a response.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		respondError(c, l, c.Errors.Last().Err)
	}
}

// respondError logs err (warn for client errors, error for 5xx) and writes
// the JSON envelope {error, request_id, fields}.
func respondError(c *gin.Context, l *slog.Logger, err error) {
	status := apperr.HTTPStatus(err)
	rid := GetRequestID(c)

	level := slog.LevelWarn
	if status >= 500 {
		level = slog.LevelError
	}
	l.LogAttrs(c.Request.Context(), level, "request_failed",
		slog.String("request_id", rid),
		slog.String("route", c.FullPath()),
		slog.Int("status", status),
		slog.Any("err", err),
	)

	payload := gin.H{
		"error":      apperr.PublicMessage(err),
		"request_id": rid,
	}
	if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
		payload["fields"] = ae.Fields
	}
	c.AbortWithStatusJSON(status, payload)
}
