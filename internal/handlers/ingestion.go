package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unity-hallie/freezer-backend/internal/dto"
	apierrors "github.com/unity-hallie/freezer-backend/internal/errors"
	"github.com/unity-hallie/freezer-backend/internal/middleware"
	"github.com/unity-hallie/freezer-backend/internal/services"
)

// IngestionHandler handles the shopping list ingestion endpoint
type IngestionHandler struct {
	ingestionService *services.IngestionService
}

// NewIngestionHandler creates a new IngestionHandler
func NewIngestionHandler(ingestionService *services.IngestionService) *IngestionHandler {
	return &IngestionHandler{ingestionService: ingestionService}
}

// Ingest handles POST /api/shopping/ingest
func (h *IngestionHandler) Ingest(c *gin.Context) {
	var req dto.IngestShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	userID, _ := middleware.GetUserID(c)
	result, err := h.ingestionService.Ingest(c.Request.Context(), userID, req.Content, req.SourceType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContentTooShort), errors.Is(err, services.ErrContentTooLong):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNoHousehold):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.IngestShoppingListResponse{
		Message:            fmt.Sprintf("Created %d of %d parsed items", result.ItemsCreated, result.TotalParsed),
		IngestResult:       *result,
		ReviewInstructions: "These items were parsed automatically. Review names, quantities, and storage locations before relying on them.",
	})
}
