package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	authPath = "/auth"
	homePath = "/"
)

// RequireAuth rejects anonymous requests: JSON clients get 401 with a
// redirect hint, browsers are sent to the sign-in page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}
		abortUnauthenticated(c)
	}
}

func abortUnauthenticated(c *gin.Context) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":      "Please sign in to continue.",
			"redirect":   authPath,
			"request_id": GetRequestID(c),
		})
		return
	}
	returnTo := c.Request.URL.RequestURI()
	c.Redirect(http.StatusFound, authPath+"?return_to="+url.QueryEscape(returnTo))
	c.Abort()
}

func abortForbidden(c *gin.Context) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":      "You do not have access to this page.",
			"redirect":   homePath,
			"request_id": GetRequestID(c),
		})
		return
	}
	c.Redirect(http.StatusFound, homePath)
	c.Abort()
}
