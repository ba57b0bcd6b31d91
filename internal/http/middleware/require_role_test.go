package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/testutil"
)

type fakeRoles struct {
	roles map[string]access.Role
	err   error
	delay time.Duration
	calls int
}

func (f *fakeRoles) Role(_ context.Context, id string) (access.Role, error) {
	f.calls++
	if f.delay > 0 {
		// ignores ctx on purpose so the guard's own deadline is exercised
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return "", f.err
	}
	r, ok := f.roles[id]
	if !ok {
		return "", errors.New("no such user")
	}
	return r, nil
}

func guardEngine(g *Guard, required access.Role, u *ContextUser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	if u != nil {
		r.Use(func(c *gin.Context) {
			SetCurrentUser(c, *u)
			c.Next()
		})
	}
	h := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": VerifiedRole(c)})
	}
	r.GET("/api/admin/thing", g.RequireRole(required), h)
	r.GET("/admin/thing", g.RequireRole(required), h)
	return r
}

func do(r http.Handler, path string, html bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if html {
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireRole_Unauthenticated(t *testing.T) {
	roles := &fakeRoles{}
	g := NewGuard(roles, time.Second, testutil.Logger())
	r := guardEngine(g, access.Moderator, nil)

	w := do(r, "/api/admin/thing", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/auth", decode(t, w)["redirect"])

	w = do(r, "/admin/thing?tab=1", true)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth?return_to=%2Fadmin%2Fthing%3Ftab%3D1", w.Header().Get("Location"))

	assert.Zero(t, roles.calls)
}

func TestRequireRole_NotStaff(t *testing.T) {
	roles := &fakeRoles{roles: map[string]access.Role{"u1": access.Customer}}
	g := NewGuard(roles, time.Second, testutil.Logger())
	r := guardEngine(g, access.Moderator, &ContextUser{ID: "u1", Role: access.Customer})

	w := do(r, "/api/admin/thing", false)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "/", decode(t, w)["redirect"])

	w = do(r, "/admin/thing", true)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireRole_UsesFreshRole(t *testing.T) {
	// the session still says admin but the account was demoted
	roles := &fakeRoles{roles: map[string]access.Role{"u1": access.Customer}}
	g := NewGuard(roles, time.Second, testutil.Logger())
	r := guardEngine(g, access.Moderator, &ContextUser{ID: "u1", Role: access.Admin})

	w := do(r, "/api/admin/thing", false)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 1, roles.calls)
}

func TestRequireRole_Hierarchy(t *testing.T) {
	roles := &fakeRoles{roles: map[string]access.Role{
		"sa":  access.Superadmin,
		"adm": access.Admin,
		"mod": access.Moderator,
	}}
	g := NewGuard(roles, time.Second, testutil.Logger())

	cases := []struct {
		user     string
		required access.Role
		want     int
	}{
		{"sa", access.Moderator, http.StatusOK},
		{"sa", access.Admin, http.StatusOK},
		{"adm", access.Moderator, http.StatusOK},
		{"adm", access.Superadmin, http.StatusForbidden},
		{"mod", access.Moderator, http.StatusOK},
		{"mod", access.Admin, http.StatusForbidden},
		{"mod", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.user+"_"+string(tc.required), func(t *testing.T) {
			r := guardEngine(g, tc.required, &ContextUser{ID: tc.user})
			w := do(r, "/api/admin/thing", false)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.Equal(t, string(roles.roles[tc.user]), decode(t, w)["role"])
			}
		})
	}
}

func TestRequireRole_LookupError(t *testing.T) {
	roles := &fakeRoles{err: errors.New("db down")}
	g := NewGuard(roles, time.Second, testutil.Logger())
	r := guardEngine(g, access.Moderator, &ContextUser{ID: "u1", Role: access.Superadmin})

	w := do(r, "/api/admin/thing", false)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_Timeout(t *testing.T) {
	roles := &fakeRoles{roles: map[string]access.Role{"u1": access.Superadmin}, delay: 300 * time.Millisecond}
	g := NewGuard(roles, 20*time.Millisecond, testutil.Logger())
	r := guardEngine(g, access.Moderator, &ContextUser{ID: "u1", Role: access.Superadmin})

	start := time.Now()
	w := do(r, "/api/admin/thing", false)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}
