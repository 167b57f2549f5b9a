package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Show the status of server.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func getHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Finance Tracker API is running"})
}

// getAPIInfo godoc
// @Summary List the API entry points.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api [get]
func getAPIInfo(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Finance Tracker API v1",
		"endpoints": gin.H{
			"accounts":     "/api/v1/accounts",
			"categories":   "/api/v1/categories",
			"transactions": "/api/v1/transactions",
			"reports":      "/api/v1/reports",
		},
	})
}

func registerHomeRoutes(r *gin.Engine) {
	r.GET("/health", getHealth)
	r.GET("/api", getAPIInfo)
}
