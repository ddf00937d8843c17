package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unity-hallie/freezer-backend/internal/database"
	apierrors "github.com/unity-hallie/freezer-backend/internal/errors"
	"github.com/unity-hallie/freezer-backend/internal/models"
)

// Context keys for entities resolved by the guards.
const (
	ContextKeyHousehold = "household"
	ContextKeyMember    = "household_member"
	ContextKeyLocation  = "location"
	ContextKeyItem      = "item"
)

// RequireHouseholdAccess checks that the user is a member of the household
// in the :id parameter. A missing household and a household the user does
// not belong to are both reported as 404 so the response never reveals
// whether the household exists. Membership is read fresh on every request;
// it is never cached because it can change between requests.
func RequireHouseholdAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		householdID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid household ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var household models.Household
		if err := database.GetDB().First(&household, householdID).Error; err != nil {
			apierrors.NotFound(c, "Household not found")
			c.Abort()
			return
		}

		var member models.HouseholdMember
		if err := database.GetDB().
			Where("household_id = ? AND user_id = ?", householdID, userID).
			First(&member).Error; err != nil {
			apierrors.NotFound(c, "Household not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyHousehold, household)
		c.Set(ContextKeyMember, member)
		c.Next()
	}
}

// RequireHouseholdOwner checks that the user owns the household resolved by
// RequireHouseholdAccess. At this point the caller is known to be a member,
// so a 403 does not leak anything.
func RequireHouseholdOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		householdInterface, exists := c.Get(ContextKeyHousehold)
		if !exists {
			apierrors.Forbidden(c, "Household access required")
			c.Abort()
			return
		}

		household, ok := householdInterface.(models.Household)
		if !ok {
			apierrors.InternalError(c, "Invalid household data")
			c.Abort()
			return
		}

		userID, _ := GetUserID(c)
		if household.OwnerID != userID {
			apierrors.Forbidden(c, "Only the household owner can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}
