package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/adlume/spotrank/internal/services"
)

type HealthHandler struct {
	logger        *logrus.Logger
	healthService *services.HealthService
}

func NewHealthHandler(logger *logrus.Logger, healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{
		logger:        logger,
		healthService: healthService,
	}
}

// Check serves the liveness summary: overall status and timestamp only.
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthService.CheckHealth()

	c.JSON(httpStatusFor(status.Status), gin.H{
		"status":    status.Status,
		"timestamp": status.Timestamp,
	})
}

// CheckDetailed includes the per-dependency probe results.
func (h *HealthHandler) CheckDetailed(c *gin.Context) {
	status := h.healthService.CheckHealth()

	c.JSON(httpStatusFor(status.Status), status)
}

func httpStatusFor(status string) int {
	if status == "unhealthy" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
