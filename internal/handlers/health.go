package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/checkitsa/app-checkit/internal/utils"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthResponse reports the service and dependency status
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheckFunc pings one dependency
type HealthCheckFunc func(ctx context.Context) error

// HealthHandlers reports dependency health
type HealthHandlers struct {
	checks map[string]HealthCheckFunc
	logger *logging.SafeLogger
}

// NewHealthHandlers creates health handlers over the named dependency checks
func NewHealthHandlers(checks map[string]HealthCheckFunc, logger *logging.SafeLogger) *HealthHandlers {
	return &HealthHandlers{checks: checks, logger: logger}
}

// HealthCheck godoc
// @Summary Health check
// @Description Pings MongoDB and Redis
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandlers) HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

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
		checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		checkCtx, checkSpan := utils.TraceExternalService(checkCtx, name, "ping")
		err := h.checks[name](checkCtx)
		if err != nil {
			utils.RecordErrorInSpan(checkSpan, err, nil)
			health.Status = "unhealthy"
			health.Services[name] = "unhealthy"
			h.logger.Error("dependency health check failed", zap.String("service", name), zap.Error(err))
		} else {
			health.Services[name] = "healthy"
		}
		checkSpan.End()
		cancel()
	}

	span.SetAttributes(attribute.String("health.status", health.Status))

	if health.Status == "healthy" {
		c.JSON(http.StatusOK, health)
	} else {
		c.JSON(http.StatusServiceUnavailable, health)
	}
}
