package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wbonfim/DeliveryApp/internal/models"
)

// HealthHandler answers liveness probes.
func HealthHandler(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{Status: "healthy", Service: service})
	}
}
