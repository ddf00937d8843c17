package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unity-hallie/freezer-backend/internal/database"
	apierrors "github.com/unity-hallie/freezer-backend/internal/errors"
	"github.com/unity-hallie/freezer-backend/internal/models"
)

// RequireLocationAccess checks that the user may touch the location in the
// :id parameter, resolved through the location's household membership. Absent
// and forbidden are both 404 "Location not found".
func RequireLocationAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		locationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid location ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var location models.Location
		if err := database.GetDB().First(&location, locationID).Error; err != nil {
			apierrors.NotFound(c, "Location not found")
			c.Abort()
			return
		}

		var member models.HouseholdMember
		if err := database.GetDB().
			Where("household_id = ? AND user_id = ?", location.HouseholdID, userID).
			First(&member).Error; err != nil {
			apierrors.NotFound(c, "Location not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyLocation, location)
		c.Next()
	}
}

// GetLocation retrieves the location resolved by RequireLocationAccess.
func GetLocation(c *gin.Context) (models.Location, bool) {
	locationInterface, exists := c.Get(ContextKeyLocation)
	if !exists {
		return models.Location{}, false
	}
	location, ok := locationInterface.(models.Location)
	return location, ok
}
