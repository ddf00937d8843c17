package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/unity-hallie/freezer-backend/internal/constants"
	"github.com/unity-hallie/freezer-backend/internal/database"
	"github.com/unity-hallie/freezer-backend/internal/models"
)

type accessTestFixture struct {
	db        *gorm.DB
	member    *models.User
	outsider  *models.User
	household *models.Household
	location  *models.Location
	item      *models.Item
}

func setupAccessTest(t *testing.T) accessTestFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Household{},
		&models.HouseholdMember{},
		&models.Location{},
		&models.Item{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	member := &models.User{Email: "member@example.com", PasswordHash: "hashed"}
	require.NoError(t, db.Create(member).Error)
	outsider := &models.User{Email: "outsider@example.com", PasswordHash: "hashed"}
	require.NoError(t, db.Create(outsider).Error)

	household := &models.Household{Name: "Home", InviteCode: "ABCD1234", OwnerID: member.ID}
	require.NoError(t, db.Create(household).Error)
	require.NoError(t, db.Create(&models.HouseholdMember{
		HouseholdID: household.ID,
		UserID:      member.ID,
	}).Error)

	location := &models.Location{
		Name:         "Freezer",
		LocationType: models.LocationTypeFreezer,
		HouseholdID:  household.ID,
	}
	require.NoError(t, db.Create(location).Error)

	item := &models.Item{
		Name:          "Frozen Peas",
		Quantity:      1,
		LocationID:    location.ID,
		AddedByUserID: member.ID,
	}
	require.NoError(t, db.Create(item).Error)

	return accessTestFixture{
		db:        db,
		member:    member,
		outsider:  outsider,
		household: household,
		location:  location,
		item:      item,
	}
}

// setUser stands in for the session auth middleware.
func setUser(userID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestRequireHouseholdAccess(t *testing.T) {
	f := setupAccessTest(t)

	get := func(userID, householdID uint64) int {
		r := gin.New()
		r.GET("/households/:id", setUser(userID), RequireHouseholdAccess(), okHandler)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/households/%d", householdID), nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, get(f.member.ID, f.household.ID))

	// Non-members and nonexistent households look identical from the
	// outside.
	require.Equal(t, http.StatusNotFound, get(f.outsider.ID, f.household.ID))
	require.Equal(t, http.StatusNotFound, get(f.member.ID, 9999))
}

func TestRequireHouseholdOwner(t *testing.T) {
	f := setupAccessTest(t)

	joiner := &models.User{Email: "joiner@example.com", PasswordHash: "hashed"}
	require.NoError(t, f.db.Create(joiner).Error)
	require.NoError(t, f.db.Create(&models.HouseholdMember{
		HouseholdID: f.household.ID,
		UserID:      joiner.ID,
	}).Error)

	patch := func(userID uint64) int {
		r := gin.New()
		r.PATCH("/households/:id", setUser(userID), RequireHouseholdAccess(), RequireHouseholdOwner(), okHandler)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/households/%d", f.household.ID), nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, patch(f.member.ID))

	// A member who is not the owner is told no, not told nothing exists.
	require.Equal(t, http.StatusForbidden, patch(joiner.ID))
}

func TestRequireLocationAccess(t *testing.T) {
	f := setupAccessTest(t)

	get := func(userID, locationID uint64) int {
		r := gin.New()
		r.GET("/locations/:id", setUser(userID), RequireLocationAccess(), okHandler)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/locations/%d", locationID), nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, get(f.member.ID, f.location.ID))
	require.Equal(t, http.StatusNotFound, get(f.outsider.ID, f.location.ID))
	require.Equal(t, http.StatusNotFound, get(f.member.ID, 9999))
}

func TestRequireItemAccess(t *testing.T) {
	f := setupAccessTest(t)

	get := func(userID, itemID uint64) int {
		r := gin.New()
		r.GET("/items/:id", setUser(userID), RequireItemAccess(), okHandler)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/items/%d", itemID), nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	// Access resolves through the item's location to its household.
	require.Equal(t, http.StatusOK, get(f.member.ID, f.item.ID))
	require.Equal(t, http.StatusNotFound, get(f.outsider.ID, f.item.ID))
	require.Equal(t, http.StatusNotFound, get(f.member.ID, 9999))
}
