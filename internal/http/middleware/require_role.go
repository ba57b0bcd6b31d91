package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
)

// RoleLookup fetches the current role of a user from the store.
type RoleLookup interface {
	Role(ctx context.Context, userID string) (access.Role, error)
}

// Guard protects admin sections. The role is fetched fresh on every request
// and never taken from the session.
type Guard struct {
	roles   RoleLookup
	timeout time.Duration
	log     *slog.Logger
}

func NewGuard(roles RoleLookup, timeout time.Duration, l *slog.Logger) *Guard {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if l == nil {
		l = slog.Default()
	}
	return &Guard{roles: roles, timeout: timeout, log: l}
}

// RequireRole admits staff whose fresh role satisfies required. An empty
// required role admits any staff member. A lookup that fails or outlives the
// timeout denies access.
func (g *Guard) RequireRole(required access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			abortUnauthenticated(c)
			return
		}

		role, err := g.lookup(c.Request.Context(), u.ID)
		if err != nil {
			g.log.LogAttrs(c.Request.Context(), slog.LevelWarn, "role_lookup_failed",
				slog.String("request_id", GetRequestID(c)),
				slog.String("user_id", u.ID),
				slog.Any("err", err),
			)
			abortForbidden(c)
			return
		}
		if !access.Permits(role, required) {
			abortForbidden(c)
			return
		}

		c.Set(ctxKeyRole, role)
		c.Next()
	}
}

// lookup bounds the store call even if the implementation ignores ctx.
func (g *Guard) lookup(parent context.Context, userID string) (access.Role, error) {
	ctx, cancel := context.WithTimeout(parent, g.timeout)
	defer cancel()

	type result struct {
		role access.Role
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		r, err := g.roles.Role(ctx, userID)
		ch <- result{r, err}
	}()

	select {
	case r := <-ch:
		return r.role, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// VerifiedRole is the role confirmed by RequireRole for this request.
func VerifiedRole(c *gin.Context) access.Role {
	v, _ := c.Get(ctxKeyRole)
	r, _ := v.(access.Role)
	return r
}
