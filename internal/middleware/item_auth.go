package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unity-hallie/freezer-backend/internal/database"
	apierrors "github.com/unity-hallie/freezer-backend/internal/errors"
	"github.com/unity-hallie/freezer-backend/internal/models"
)

// RequireItemAccess checks that the user may touch the item in the :id
// parameter. Access resolves transitively: item -> location -> household ->
// membership. Absent and forbidden are both 404 "Item not found".
func RequireItemAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid item ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var item models.Item
		if err := database.GetDB().
			Preload("Location").
			Preload("AddedBy").
			First(&item, itemID).Error; err != nil {
			apierrors.NotFound(c, "Item not found")
			c.Abort()
			return
		}

		var member models.HouseholdMember
		if err := database.GetDB().
			Where("household_id = ? AND user_id = ?", item.Location.HouseholdID, userID).
			First(&member).Error; err != nil {
			apierrors.NotFound(c, "Item not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyItem, item)
		c.Next()
	}
}

// GetItem retrieves the item resolved by RequireItemAccess.
func GetItem(c *gin.Context) (models.Item, bool) {
	itemInterface, exists := c.Get(ContextKeyItem)
	if !exists {
		return models.Item{}, false
	}
	item, ok := itemInterface.(models.Item)
	return item, ok
}
