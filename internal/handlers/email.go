package handlers

import (
	"context"
	"net/http"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/checkitsa/app-checkit/internal/models"
	"github.com/checkitsa/app-checkit/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// EmailAssessor scores an email address
type EmailAssessor interface {
	Assess(ctx context.Context, email string) models.EmailRiskResult
}

// EmailHandlers serves email risk checks
type EmailHandlers struct {
	checkRecorder
	assessor EmailAssessor
}

// NewEmailHandlers creates email check handlers. history may be nil.
func NewEmailHandlers(assessor EmailAssessor, history CheckHistory, logger *logging.SafeLogger) *EmailHandlers {
	return &EmailHandlers{
		checkRecorder: checkRecorder{history: history, logger: logger},
		assessor:      assessor,
	}
}

// CheckEmail godoc
// @Summary Assess an email address
// @Description Scores an email address from 0 to 100 using syntax, domain reputation, impersonation and DNS signals
// @Tags verify
// @Accept json
// @Produce json
// @Param data body models.EmailCheckRequest true "Email address"
// @Success 200 {object} models.EmailRiskResult
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /verify/email [post]
func (h *EmailHandlers) CheckEmail(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CheckEmail")
	defer span.End()

	var req models.EmailCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result := h.assessor.Assess(ctx, req.Email)

	outcome := string(result.Level)
	reason := ""
	if !result.Valid {
		outcome = models.ReasonInvalid
		reason = models.ReasonInvalid
	}
	span.SetAttributes(
		attribute.Int("email.score", result.Score),
		attribute.String("email.level", string(result.Level)),
	)

	h.logger.Debug("email assessed",
		zap.String("email", observability.MaskEmail(result.Email)),
		zap.Int("score", result.Score),
		zap.String("level", string(result.Level)))

	h.record(c, ctx, checkOutcome{
		kind:    models.CheckKindEmail,
		subject: result.Email,
		masked:  observability.MaskEmail(result.Email),
		valid:   result.Valid,
		reason:  reason,
		outcome: outcome,
	})
	c.JSON(http.StatusOK, result)
}
