package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unity-hallie/freezer-backend/internal/dto"
	apierrors "github.com/unity-hallie/freezer-backend/internal/errors"
	"github.com/unity-hallie/freezer-backend/internal/middleware"
	"github.com/unity-hallie/freezer-backend/internal/services"
)

// LocationHandler handles storage location endpoints
type LocationHandler struct {
	locationService *services.LocationService
	itemService     *services.ItemService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *services.LocationService, itemService *services.ItemService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
		itemService:     itemService,
	}
}

// List handles GET /api/locations, returning locations across all of the
// user's households.
func (h *LocationHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	locations, err := h.locationService.ListForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, locations)
}

// Get handles GET /api/locations/:id
func (h *LocationHandler) Get(c *gin.Context) {
	location, ok := middleware.GetLocation(c)
	if !ok {
		apierrors.InternalError(c, "Location not resolved")
		return
	}

	c.JSON(http.StatusOK, location)
}

// Update handles PATCH /api/locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	location, ok := middleware.GetLocation(c)
	if !ok {
		apierrors.InternalError(c, "Location not resolved")
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	updated, err := h.locationService.Update(&location, services.LocationUpdateInput{
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

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	location, ok := middleware.GetLocation(c)
	if !ok {
		apierrors.InternalError(c, "Location not resolved")
		return
	}

	if err := h.locationService.Delete(location.ID); err != nil {
		if errors.Is(err, services.ErrLocationHasItems) {
			apierrors.Conflict(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}

// ListItems handles GET /api/locations/:id/items
func (h *LocationHandler) ListItems(c *gin.Context) {
	location, ok := middleware.GetLocation(c)
	if !ok {
		apierrors.InternalError(c, "Location not resolved")
		return
	}

	items, err := h.itemService.ListByLocation(location.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, items)
}

// CreateItem handles POST /api/locations/:id/items
func (h *LocationHandler) CreateItem(c *gin.Context) {
	location, ok := middleware.GetLocation(c)
	if !ok {
		apierrors.InternalError(c, "Location not resolved")
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	userID, _ := middleware.GetUserID(c)
	item, err := h.itemService.Create(location.ID, userID, services.ItemCreateInput{
		Name:           req.Name,
		Description:    req.Description,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		ExpirationDate: req.ExpirationDate,
		PurchaseDate:   req.PurchaseDate,
		Category:       req.Category,
		Barcode:        req.Barcode,
		Tags:           req.Tags,
	})
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, item)
}
