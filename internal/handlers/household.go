package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/unity-hallie/freezer-backend/internal/dto"
	apierrors "github.com/unity-hallie/freezer-backend/internal/errors"
	"github.com/unity-hallie/freezer-backend/internal/middleware"
	"github.com/unity-hallie/freezer-backend/internal/models"
	"github.com/unity-hallie/freezer-backend/internal/services"
)

// HouseholdHandler handles household endpoints
type HouseholdHandler struct {
	householdService *services.HouseholdService
	locationService  *services.LocationService
}

// NewHouseholdHandler creates a new HouseholdHandler
func NewHouseholdHandler(householdService *services.HouseholdService, locationService *services.LocationService) *HouseholdHandler {
	return &HouseholdHandler{
		householdService: householdService,
		locationService:  locationService,
	}
}

// Create handles POST /api/households
func (h *HouseholdHandler) Create(c *gin.Context) {
	var req dto.CreateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	userID, _ := middleware.GetUserID(c)
	household, err := h.householdService.Create(userID, req.Name, req.Description)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, dto.NewHouseholdResponse(household))
}

// List handles GET /api/households
func (h *HouseholdHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	households, err := h.householdService.ListForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	responses := make([]dto.HouseholdResponse, 0, len(households))
	for i := range households {
		responses = append(responses, dto.NewHouseholdResponse(&households[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// Get handles GET /api/households/:id. Membership was already checked by
// the route's access middleware.
func (h *HouseholdHandler) Get(c *gin.Context) {
	household := mustHousehold(c)
	if household == nil {
		return
	}

	detail, members, err := h.householdService.GetWithMembers(household.ID)
	if err != nil {
		// The household can disappear between the access check and the fetch.
		if errors.Is(err, services.ErrHouseholdNotFound) {
			apierrors.NotFound(c, "Household not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.NewHouseholdDetailResponse(detail, members))
}

// Update handles PATCH /api/households/:id (owner only)
func (h *HouseholdHandler) Update(c *gin.Context) {
	household := mustHousehold(c)
	if household == nil {
		return
	}

	var req dto.UpdateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	updated, err := h.householdService.Update(household, req.Name, req.Description)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.NewHouseholdResponse(updated))
}

// Join handles POST /api/households/join
func (h *HouseholdHandler) Join(c *gin.Context) {
	var req dto.JoinHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	userID, _ := middleware.GetUserID(c)
	household, err := h.householdService.Join(userID, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHouseholdNotFound):
			apierrors.NotFound(c, "Invalid invite code")
		case errors.Is(err, services.ErrAlreadyMember):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewHouseholdResponse(household))
}

// Leave handles POST /api/households/:id/leave
func (h *HouseholdHandler) Leave(c *gin.Context) {
	householdID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid household ID")
		return
	}

	userID, _ := middleware.GetUserID(c)
	if err := h.householdService.Leave(householdID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrHouseholdNotFound):
			apierrors.NotFound(c, "Household not found")
		case errors.Is(err, services.ErrOwnerCannotLeave), errors.Is(err, services.ErrNotMember):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left household"})
}

// Invite handles POST /api/households/:id/invite. Any member may invite;
// a non-member gets 403 rather than 404 because the invite code itself is
// the thing being shared, not the household's existence.
func (h *HouseholdHandler) Invite(c *gin.Context) {
	householdID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid household ID")
		return
	}

	var req dto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	userID, _ := middleware.GetUserID(c)
	household, err := h.householdService.Invite(householdID, userID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHouseholdNotFound):
			apierrors.NotFound(c, "Household not found")
		case errors.Is(err, services.ErrNotMember):
			apierrors.Forbidden(c, "Only members can send invitations")
		case errors.Is(err, services.ErrAlreadyMember):
			apierrors.Conflict(c, "User is already a member")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Invitation sent",
		"invite_code": household.InviteCode,
	})
}

// ListLocations handles GET /api/households/:id/locations
func (h *HouseholdHandler) ListLocations(c *gin.Context) {
	household := mustHousehold(c)
	if household == nil {
		return
	}

	locations, err := h.locationService.ListByHousehold(household.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, locations)
}

// CreateLocation handles POST /api/households/:id/locations
func (h *HouseholdHandler) CreateLocation(c *gin.Context) {
	household := mustHousehold(c)
	if household == nil {
		return
	}

	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	location, err := h.locationService.Create(household.ID, services.LocationCreateInput{
		Name:             req.Name,
		LocationType:     req.LocationType,
		TemperatureRange: req.TemperatureRange,
		Icon:             req.Icon,
		Color:            req.Color,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidLocationType) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, location)
}

// mustHousehold pulls the household resolved by the access middleware.
func mustHousehold(c *gin.Context) *models.Household {
	householdInterface, exists := c.Get(middleware.ContextKeyHousehold)
	if !exists {
		apierrors.InternalError(c, "Household not resolved")
		return nil
	}
	household, ok := householdInterface.(models.Household)
	if !ok {
		apierrors.InternalError(c, "Invalid household data")
		return nil
	}
	return &household
}
