package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/unity-hallie/freezer-backend/internal/constants"
	apierrors "github.com/unity-hallie/freezer-backend/internal/errors"
)

// RequireAuth rejects requests that carry no logged-in session. On success
// the session's user ID is copied into the request context so handlers and
// the household guards can read it without touching the session store again.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID reads the authenticated user ID from the request context.
// Login always stores the ID as uint64, so anything else means the
// request never passed RequireAuth.
func GetUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := v.(uint64)
	return userID, ok
}
