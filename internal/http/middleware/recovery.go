package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/apperr"
)

// Recovery turns a handler panic into the 500 JSON envelope. A
// panic caused by the client hanging up is logged at warn and left without a
// response. http.ErrAbortHandler is re-raised for net/http.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			ctx := c.Request.Context()
			if clientGone(rec) {
				l.WarnContext(ctx, "client_disconnected",
					"request_id", GetRequestID(c),
					"err", rec,
				)
				c.Abort()
				return
			}

			l.LogAttrs(ctx, slog.LevelError, "panic_recovered",
				slog.String("request_id", GetRequestID(c)),
				slog.String("route", c.FullPath()),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respondError(c, l, apperr.Wrap(fmt.Errorf("panic: %v", rec)))
		}()
		c.Next()
	}
}

func clientGone(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	var se *os.SyscallError
	if errors.As(err, &se) {
		return errors.Is(se.Err, syscall.EPIPE) || errors.Is(se.Err, syscall.ECONNRESET)
	}
	var ne *net.OpError
	return errors.As(err, &ne) && errors.Is(ne.Err, syscall.EPIPE)
}
