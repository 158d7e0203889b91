package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/vincecoscia/retriever-ai/internal/constants"
	apierrors "github.com/vincecoscia/retriever-ai/internal/errors"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireSession is the page-flavored variant of RequireAuth: instead of a
// 401 payload it redirects to the sign-in page, matching what the admin and
// dashboard layouts do when session resolution fails.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			c.Redirect(http.StatusFound, "/sign-in")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetActiveOrgID returns the organization recorded in the session, 0 when
// none has been selected.
func GetActiveOrgID(c *gin.Context) uint64 {
	session := sessions.Default(c)
	switch v := session.Get(constants.SessionKeyActiveOrg).(type) {
	case uint64:
		return v
	case int:
		if v > 0 {
			return uint64(v)
		}
	}
	return 0
}
