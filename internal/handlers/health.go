package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unity-hallie/freezer-backend/internal/database"
)

// HealthCheck handles GET /health
func HealthCheck(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	if db := database.GetDB(); db != nil {
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{"status": status})
}
