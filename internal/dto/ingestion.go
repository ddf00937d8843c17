package dto

import "github.com/unity-hallie/freezer-backend/internal/services"

type IngestShoppingListRequest struct {
	Content    string `json:"content" binding:"required"`
	SourceType string `json:"source_type"`
}

type IngestShoppingListResponse struct {
	Message string `json:"message"`
	services.IngestResult
	ReviewInstructions string `json:"review_instructions"`
}
