package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http/middleware"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/auth"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/email"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
)

// AuthHandlers contains handlers for authentication routes.
type AuthHandlers struct {
	auth   *auth.Service
	users  *users.Repo
	sender *email.Sender
	cookie CookieCfg
	log    *slog.Logger
}

type CookieCfg struct {
	Name   string
	Secure bool
}

func NewAuthHandlers(a *auth.Service, u *users.Repo, s *email.Sender, cookie CookieCfg, l *slog.Logger) *AuthHandlers {
	if l == nil {
		l = slog.Default()
	}
	return &AuthHandlers{auth: a, users: u, sender: s, cookie: cookie, log: l}
}

type signupReq struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
}

func (h *AuthHandlers) Signup(c *gin.Context) {
	var in signupReq
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.auth.Signup(c.Request.Context(), auth.SignupInput{
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		fail(c, err)
		return
	}
	// the account exists; a mail failure is only logged
	if h.sender != nil {
		ctx := c.Request.Context()
		if err := h.sender.Welcome(context.WithoutCancel(ctx), u.Email, u.FirstName); err != nil {
			h.log.WarnContext(ctx, "welcome email not sent", "user_id", u.ID, "err", err)
		}
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandlers) Login(c *gin.Context) {
	var in loginReq
	if !bindJSON(c, &in) {
		return
	}
	u, sess, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	maxAge := int(h.auth.Sessions().TTL().Seconds())
	middleware.SetSessionCookie(c, h.cookie.Name, sess.Token, maxAge, h.cookie.Secure)
	c.JSON(http.StatusOK, gin.H{"user": u, "token": sess.Token, "expires_at": sess.ExpiresAt})
}

func (h *AuthHandlers) Logout(c *gin.Context) {
	if sid := middleware.CurrentSessionID(c); sid != "" {
		if err := h.auth.Logout(c.Request.Context(), sid); err != nil {
			fail(c, err)
			return
		}
	}
	middleware.ClearSessionCookie(c, h.cookie.Name, h.cookie.Secure)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandlers) Me(c *gin.Context) {
	cu, ok := mustUser(c)
	if !ok {
		return
	}
	u, err := h.users.Get(c.Request.Context(), cu.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}
