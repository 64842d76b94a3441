package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"disciplix/internal/api"
	"disciplix/internal/config"
)

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} api.HealthResponse
// @Router /health [get]
func Health(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, api.HealthResponse{
			Status:      "OK",
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Version:     cfg.Version,
			Environment: cfg.Environment,
		})
	}
}

// Metrics godoc
// @Summary Prometheus metrics
// @Description Exposes Prometheus metrics in text format
// @Tags system
// @Produce text/plain
// @Success 200 {string} string
// @Router /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
