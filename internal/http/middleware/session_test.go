package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/auth"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/testutil"
)

func sessionEngine(t *testing.T) (*gin.Engine, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	svc := auth.NewService(users.NewRepo(db), auth.NewSessionStore(db, 0)).WithCost(bcrypt.MinCost)

	r := gin.New()
	r.Use(Session(SessionCfg{Auth: svc, CookieName: "ss_session", Log: testutil.Logger()}))
	r.GET("/api/whoami", func(c *gin.Context) {
		u, ok := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "email": u.Email, "session": CurrentSessionID(c)})
	})
	return r, svc
}

func login(t *testing.T, svc *auth.Service) (string, string) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.Signup(ctx, auth.SignupInput{Email: "pepper@example.com", Password: "habanero123"})
	require.NoError(t, err)
	_, sess, err := svc.Login(ctx, "pepper@example.com", "habanero123")
	require.NoError(t, err)
	return sess.Token, sess.ID
}

func TestSession_Bearer(t *testing.T) {
	r, svc := sessionEngine(t)
	token, id := login(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"ok":true`)
	assert.Contains(t, body, "pepper@example.com")
	assert.Contains(t, body, id)
}

func TestSession_Cookie(t *testing.T) {
	r, svc := sessionEngine(t)
	token, _ := login(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "ss_session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestSession_UnknownCookieIsCleared(t *testing.T) {
	r, _ := sessionEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "ss_session", Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"ok":false`)
	assert.True(t, strings.HasPrefix(w.Header().Get("Set-Cookie"), "ss_session=;"))
}

func TestSession_LoggedOut(t *testing.T) {
	r, svc := sessionEngine(t)
	token, id := login(t, svc)
	require.NoError(t, svc.Logout(context.Background(), id))

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"ok":false`)
}
