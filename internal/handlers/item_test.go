package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unity-hallie/freezer-backend/internal/middleware"
	"github.com/unity-hallie/freezer-backend/internal/models"
	"github.com/unity-hallie/freezer-backend/internal/repository"
	"github.com/unity-hallie/freezer-backend/internal/services"
)

type itemTestEnv struct {
	db               *gorm.DB
	handler          *ItemHandler
	locationHandler  *LocationHandler
	itemService      *services.ItemService
	householdService *services.HouseholdService
}

func setupItemTestEnv(t *testing.T) itemTestEnv {
	t.Helper()

	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	householdRepo := repository.NewHouseholdRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	itemRepo := repository.NewItemRepository(db)

	householdService := services.NewHouseholdService(householdRepo, userRepo, noopMailer{}, testLogger())
	locationService := services.NewLocationService(locationRepo, testLogger())
	itemService := services.NewItemService(itemRepo, locationRepo, householdRepo, testLogger())

	return itemTestEnv{
		db:               db,
		handler:          NewItemHandler(itemService),
		locationHandler:  NewLocationHandler(locationService, itemService),
		itemService:      itemService,
		householdService: householdService,
	}
}

func TestItemHandler_CreateByLocationName(t *testing.T) {
	env := setupItemTestEnv(t)
	user := createHouseholdTestUser(t, env.db, "cook@example.com")
	_, err := env.householdService.Create(user.ID, "Home", "")
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"location_name": "refrigerator",
		"name":          "Leftover Soup",
		"quantity":      2,
	})
	require.NoError(t, err)

	c, w := householdTestContext(http.MethodPost, "/api/items/by-location-name", body, user.ID)
	env.handler.CreateByLocationName(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var item models.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	require.Equal(t, "Leftover Soup", item.Name)

	// "refrigerator" is an accepted alias for the fridge.
	var location models.Location
	require.NoError(t, env.db.First(&location, item.LocationID).Error)
	require.Equal(t, models.LocationTypeFridge, location.LocationType)
}

func TestItemHandler_CreateByLocationNameRejectsUnknownNames(t *testing.T) {
	env := setupItemTestEnv(t)
	user := createHouseholdTestUser(t, env.db, "cook@example.com")
	_, err := env.householdService.Create(user.ID, "Home", "")
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"location_name": "garage",
		"name":          "Beer",
	})
	require.NoError(t, err)

	c, w := householdTestContext(http.MethodPost, "/api/items/by-location-name", body, user.ID)
	env.handler.CreateByLocationName(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemHandler_CreateByLocationNameWithoutHousehold(t *testing.T) {
	env := setupItemTestEnv(t)
	loner := createHouseholdTestUser(t, env.db, "loner@example.com")

	body, err := json.Marshal(map[string]any{
		"location_name": "pantry",
		"name":          "Crackers",
	})
	require.NoError(t, err)

	c, w := householdTestContext(http.MethodPost, "/api/items/by-location-name", body, loner.ID)
	env.handler.CreateByLocationName(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemHandler_UpdateRejectsMoveToForeignLocation(t *testing.T) {
	env := setupItemTestEnv(t)
	user := createHouseholdTestUser(t, env.db, "cook@example.com")
	stranger := createHouseholdTestUser(t, env.db, "stranger@example.com")

	_, err := env.householdService.Create(user.ID, "Home", "")
	require.NoError(t, err)
	foreign, err := env.householdService.Create(stranger.ID, "Elsewhere", "")
	require.NoError(t, err)

	item, err := env.itemService.CreateByLocationName(user.ID, "fridge", services.ItemCreateInput{Name: "Milk"})
	require.NoError(t, err)

	var foreignLocation models.Location
	require.NoError(t, env.db.Where("household_id = ?", foreign.ID).First(&foreignLocation).Error)

	body, err := json.Marshal(map[string]any{"location_id": foreignLocation.ID})
	require.NoError(t, err)

	c, w := householdTestContext(http.MethodPatch, "/api/items/1", body, user.ID)
	c.Set(middleware.ContextKeyItem, *item)
	env.handler.Update(c)

	require.Equal(t, http.StatusNotFound, w.Code, "foreign locations must look nonexistent")
}

func TestLocationHandler_DeleteRefusesNonEmptyLocation(t *testing.T) {
	env := setupItemTestEnv(t)
	user := createHouseholdTestUser(t, env.db, "cook@example.com")
	_, err := env.householdService.Create(user.ID, "Home", "")
	require.NoError(t, err)

	item, err := env.itemService.CreateByLocationName(user.ID, "pantry", services.ItemCreateInput{Name: "Rice"})
	require.NoError(t, err)

	var location models.Location
	require.NoError(t, env.db.First(&location, item.LocationID).Error)

	c, w := householdTestContext(http.MethodDelete, "/api/locations/1", nil, user.ID)
	c.Set(middleware.ContextKeyLocation, location)
	env.locationHandler.Delete(c)
	require.Equal(t, http.StatusConflict, w.Code)

	// Empty it out and deletion goes through.
	require.NoError(t, env.db.Delete(&models.Item{}, item.ID).Error)

	c, w = householdTestContext(http.MethodDelete, "/api/locations/1", nil, user.ID)
	c.Set(middleware.ContextKeyLocation, location)
	env.locationHandler.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)
}
