package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/project-tracker-api/pkg/api"
	"go.uber.org/zap"
)

// Pinger is the part of the store the readiness probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   Pinger
	version string
	logger  *zap.Logger
}

func NewHealthHandler(store Pinger, version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{store: store, version: version, logger: logger}
}

// Health reports that the process is up. It never touches the store.
//
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "healthy", Version: h.version})
}

// Ready checks that the store answers within two seconds.
//
// GET /readyz
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ready"})
}
