package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unity-hallie/freezer-backend/internal/repository"
	"github.com/unity-hallie/freezer-backend/internal/services"
	"github.com/unity-hallie/freezer-backend/internal/shopping"
)

func setupIngestionHandler(t *testing.T) (*IngestionHandler, *services.HouseholdService, func(email string) uint64) {
	t.Helper()

	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	householdRepo := repository.NewHouseholdRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	itemRepo := repository.NewItemRepository(db)

	householdService := services.NewHouseholdService(householdRepo, userRepo, noopMailer{}, testLogger())
	itemService := services.NewItemService(itemRepo, locationRepo, householdRepo, testLogger())
	cache := shopping.NewCache(5*time.Minute, 100)
	ingestionService := services.NewIngestionService(nil, cache, householdRepo, itemService, testLogger())

	createUser := func(email string) uint64 {
		return createHouseholdTestUser(t, db, email).ID
	}

	return NewIngestionHandler(ingestionService), householdService, createUser
}

func TestIngestionHandler_Ingest(t *testing.T) {
	handler, householdService, createUser := setupIngestionHandler(t)

	userID := createUser("cook@example.com")
	_, err := householdService.Create(userID, "Home", "")
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{
		"content":     "Chicken Breast 2 lbs\nWhole Milk 1 gallon",
		"source_type": "generic",
	})
	require.NoError(t, err)

	c, w := householdTestContext(http.MethodPost, "/api/shopping/ingest", body, userID)
	handler.Ingest(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message            string   `json:"message"`
		ItemsCreated       int      `json:"items_created"`
		TotalParsed        int      `json:"total_parsed"`
		RequiresReview     bool     `json:"requires_review"`
		ParsingLog         []string `json:"parsing_log"`
		ReviewInstructions string   `json:"review_instructions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 2, response.ItemsCreated)
	require.Equal(t, 2, response.TotalParsed)
	require.True(t, response.RequiresReview)
	require.NotEmpty(t, response.Message)
	require.NotEmpty(t, response.ReviewInstructions)
}

func TestIngestionHandler_IngestRejectsShortContent(t *testing.T) {
	handler, householdService, createUser := setupIngestionHandler(t)

	userID := createUser("cook@example.com")
	_, err := householdService.Create(userID, "Home", "")
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"content": "milk"})
	require.NoError(t, err)

	c, w := householdTestContext(http.MethodPost, "/api/shopping/ingest", body, userID)
	handler.Ingest(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestionHandler_IngestWithoutHousehold(t *testing.T) {
	handler, _, createUser := setupIngestionHandler(t)
	userID := createUser("loner@example.com")

	body, err := json.Marshal(map[string]string{"content": "Chicken Breast 2 lbs"})
	require.NoError(t, err)

	c, w := householdTestContext(http.MethodPost, "/api/shopping/ingest", body, userID)
	handler.Ingest(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
