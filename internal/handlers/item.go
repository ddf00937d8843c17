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

// ItemHandler handles inventory item endpoints
type ItemHandler struct {
	itemService *services.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List handles GET /api/items, returning items across all of the user's
// households.
func (h *ItemHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	items, err := h.itemService.ListForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, items)
}

// Get handles GET /api/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	item, ok := middleware.GetItem(c)
	if !ok {
		apierrors.InternalError(c, "Item not resolved")
		return
	}

	c.JSON(http.StatusOK, item)
}

// Update handles PATCH /api/items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	item, ok := middleware.GetItem(c)
	if !ok {
		apierrors.InternalError(c, "Item not resolved")
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	// Moving to another location requires access to the destination too.
	if req.LocationID != nil && *req.LocationID != item.LocationID {
		userID, _ := middleware.GetUserID(c)
		if err := h.itemService.VerifyLocationAccess(userID, *req.LocationID); err != nil {
			if errors.Is(err, services.ErrLocationNotFound) {
				apierrors.NotFound(c, "Location not found")
				return
			}
			apierrors.InternalError(c, "")
			return
		}
	}

	updated, err := h.itemService.Update(&item, services.ItemUpdateInput{
		Name:           req.Name,
		Description:    req.Description,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		ExpirationDate: req.ExpirationDate,
		PurchaseDate:   req.PurchaseDate,
		Category:       req.Category,
		Barcode:        req.Barcode,
		Tags:           req.Tags,
		LocationID:     req.LocationID,
	})
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	item, ok := middleware.GetItem(c)
	if !ok {
		apierrors.InternalError(c, "Item not resolved")
		return
	}

	if err := h.itemService.Delete(item.ID); err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// CreateByLocationName handles POST /api/items/by-location-name, filing an
// item under a canonical location (freezer, fridge, pantry) in the user's
// first household without requiring a location ID.
func (h *ItemHandler) CreateByLocationName(c *gin.Context) {
	var req dto.CreateItemByLocationNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	userID, _ := middleware.GetUserID(c)
	item, err := h.itemService.CreateByLocationName(userID, req.LocationName, services.ItemCreateInput{
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
		switch {
		case errors.Is(err, services.ErrUnknownLocationName):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNoHousehold):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}
