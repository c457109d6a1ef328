package middleware

import (
	"github.com/enigmahq/taskboard/internal/constants"
	"github.com/enigmahq/taskboard/internal/database"
	apierrors "github.com/enigmahq/taskboard/internal/errors"
	"github.com/enigmahq/taskboard/internal/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
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

// RequireAdmin loads the authenticated user and rejects non-admins. Runs
// after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !actor.IsAdmin() {
			apierrors.Forbidden(c, "Administrators only")
			c.Abort()
			return
		}

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

// CurrentUser loads the authenticated user row for the request. Every core
// operation receives this explicit identity; nothing reads ambient session
// state past this point.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return nil, false
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		return nil, false
	}
	return &user, true
}
