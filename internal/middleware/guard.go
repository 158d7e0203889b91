package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vincecoscia/retriever-ai/internal/constants"
)

// RequireSessionCookie is the edge guard for the protected path prefixes. It
// only checks that the session cookie exists; validity is deferred to session
// resolution on the page itself. A forged or stale cookie passes here and is
// rejected later.
func RequireSessionCookie() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := c.Request.Cookie(constants.SessionCookieName); err != nil {
			c.Redirect(http.StatusFound, "/sign-in")
			c.Abort()
			return
		}
		c.Next()
	}
}
