package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	defaultSummaryHours = 24
	maxSummaryHours     = 24 * 30
)

// ChecksHandlers serves aggregate views of the check history
type ChecksHandlers struct {
	history CheckHistory
	logger  *logging.SafeLogger
	now     func() time.Time
}

// NewChecksHandlers creates check history handlers. history may be nil when
// persistence is disabled.
func NewChecksHandlers(history CheckHistory, logger *logging.SafeLogger) *ChecksHandlers {
	return &ChecksHandlers{history: history, logger: logger, now: time.Now}
}

// GetSummary godoc
// @Summary Check summary
// @Description Counts checks per kind and validity over the last hours
// @Tags checks
// @Produce json
// @Param hours query int false "Look-back window in hours (1-720)" default(24)
// @Success 200 {object} models.CheckSummary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /checks/summary [get]
func (h *ChecksHandlers) GetSummary(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetCheckSummary")
	defer span.End()

	hours := defaultSummaryHours
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSummaryHours {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "hours must be an integer between 1 and 720"})
			return
		}
		hours = parsed
	}
	span.SetAttributes(attribute.Int("summary.hours", hours))

	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Check history is disabled"})
		return
	}

	since := h.now().UTC().Add(-time.Duration(hours) * time.Hour)
	summary, err := h.history.Summary(ctx, since)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("failed to aggregate checks", zap.Int("hours", hours), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load check summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
