package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/auth"
)

const (
	ctxKeyUser    = "user"
	ctxKeySession = "session_id"
	ctxKeyRole    = "verified_role"
)

// SessionCfg holds configuration for the session middleware.
type SessionCfg struct {
	Auth       *auth.Service
	CookieName string
	Secure     bool
	Log        *slog.Logger
}

// ContextUser is the authenticated user as loaded at the start of the
// request. Its Role is informational; guards re-check it.
type ContextUser struct {
	ID        string
	Email     string
	Role      access.Role
	FirstName string
	LastName  string
}

// Session resolves the session from the cookie or an
// "Authorization: Bearer <token>" header. Anonymous requests pass
// through untouched.
func Session(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := sessionToken(c, cfg.CookieName)
		if token == "" {
			c.Next()
			return
		}

		u, sess, err := cfg.Auth.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrSessionNotFound) && cfg.Log != nil {
				cfg.Log.WarnContext(c.Request.Context(), "session lookup failed", "err", err)
			}
			if fromCookie {
				ClearSessionCookie(c, cfg.CookieName, cfg.Secure)
			}
			c.Next()
			return
		}

		c.Set(ctxKeySession, sess.ID)
		c.Set(ctxKeyUser, ContextUser{
			ID:        u.ID,
			Email:     u.Email,
			Role:      u.Role,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) (string, bool) {
	if h := c.GetHeader("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok), false
		}
	}
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v, true
	}
	return "", false
}

func SetSessionCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, name string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", secure, true)
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(c *gin.Context) (ContextUser, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return ContextUser{}, false
	}
	u, ok := v.(ContextUser)
	return u, ok && u.ID != ""
}

func CurrentSessionID(c *gin.Context) string {
	return c.GetString(ctxKeySession)
}

// SetCurrentUser is used by handlers that open a session mid-request.
func SetCurrentUser(c *gin.Context, u ContextUser) {
	c.Set(ctxKeyUser, u)
}
