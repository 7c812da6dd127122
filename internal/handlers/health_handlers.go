package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kyc-co/synthforms/internal/observability"
)

// HealthCheckFunc probes one dependency.
type HealthCheckFunc func(ctx context.Context) error

// HealthHandlers reports the status of the configured dependencies.
type HealthHandlers struct {
	checks map[string]HealthCheckFunc
}

// NewHealthHandlers creates health handlers over the named checks. Generation needs no
// dependency, so an empty set is healthy.
func NewHealthHandlers(checks map[string]HealthCheckFunc) *HealthHandlers {
	if checks == nil {
		checks = map[string]HealthCheckFunc{}
	}
	return &HealthHandlers{checks: checks}
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports the status of the service and of every configured sink
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandlers) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string, len(h.checks)),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			health.Status = "unhealthy"
			health.Services[name] = "unhealthy"
			observability.Logger().Warn("health check failed", zap.String("service", name), zap.Error(err))
			continue
		}
		health.Services[name] = "healthy"
	}

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}
