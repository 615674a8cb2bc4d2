package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReadinessCheck reports why the service cannot serve traffic, or nil.
type ReadinessCheck func() error

type HealthHandler struct {
	logger    *zap.Logger
	startTime time.Time
	ready     ReadinessCheck
}

func NewHealthHandler(logger *zap.Logger, ready ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		startTime: time.Now(),
		ready:     ready,
	}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.startTime).String(),
	})
}

func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(); err != nil {
			h.logger.Warn("Readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Status: "unavailable",
				Uptime: time.Since(h.startTime).String(),
				Reason: err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.startTime).String(),
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	if h.ready != nil && h.ready() != nil {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
