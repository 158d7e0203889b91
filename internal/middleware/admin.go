package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vincecoscia/retriever-ai/internal/constants"
	"github.com/vincecoscia/retriever-ai/internal/database"
	"github.com/vincecoscia/retriever-ai/internal/models"
)

// RequirePlatformAdmin gates the /admin area: the user must be a member of
// the reserved admin organization. Non-admins are sent to their dashboard,
// the same way the admin layout bounces them.
func RequirePlatformAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.Redirect(http.StatusFound, "/sign-in")
			c.Abort()
			return
		}

		var member models.Member
		err := database.GetDB().
			Joins("JOIN organizations ON organizations.id = members.organization_id").
			Where("members.user_id = ? AND organizations.slug = ?", userID, constants.AdminOrgSlug).
			First(&member).Error
		if err != nil {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}

		c.Next()
	}
}
