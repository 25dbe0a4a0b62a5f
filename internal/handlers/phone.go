package handlers

import (
	"net/http"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/checkitsa/app-checkit/internal/models"
	"github.com/checkitsa/app-checkit/internal/observability"
	"github.com/checkitsa/app-checkit/internal/utils"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// PhoneHandlers serves phone number checks
type PhoneHandlers struct {
	checkRecorder
}

// NewPhoneHandlers creates phone check handlers. history may be nil.
func NewPhoneHandlers(history CheckHistory, logger *logging.SafeLogger) *PhoneHandlers {
	return &PhoneHandlers{checkRecorder: checkRecorder{history: history, logger: logger}}
}

// CheckPhone godoc
// @Summary Check a phone number
// @Description Parses a phone number, defaulting to South Africa for national format, and reports its line type and risk flags
// @Tags verify
// @Accept json
// @Produce json
// @Param data body models.PhoneCheckRequest true "Phone number"
// @Success 200 {object} models.PhoneCheckResult
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /verify/phone [post]
func (h *PhoneHandlers) CheckPhone(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CheckPhone")
	defer span.End()

	var req models.PhoneCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	_, validateSpan := utils.TraceInputValidation(ctx, "phone")
	phone, err := utils.ParseSAPhoneNumber(req.Phone)
	validateSpan.SetAttributes(attribute.Bool("validation.valid", err == nil))
	validateSpan.End()

	if err != nil {
		h.logger.Debug("phone number rejected",
			zap.String("phone", observability.MaskPhone(req.Phone)),
			zap.Error(err))

		h.record(c, ctx, checkOutcome{
			kind:    models.CheckKindPhone,
			subject: req.Phone,
			masked:  observability.MaskPhone(req.Phone),
			valid:   false,
			reason:  models.ReasonInvalid,
			outcome: models.ReasonInvalid,
		})
		c.JSON(http.StatusOK, models.PhoneCheckResult{
			Valid:   false,
			Message: models.MessagePhoneInvalid,
		})
		return
	}

	result := models.PhoneCheckResult{
		Valid:          true,
		Message:        models.MessagePhoneValid,
		CountryCode:    phone.CountryCode,
		NationalNumber: phone.NationalNumber,
		E164:           phone.E164,
		Region:         phone.Region,
		LineType:       phone.LineType,
		Local:          phone.Region == utils.DefaultPhoneRegion,
		RiskFlags:      utils.PhoneRiskFlags(phone),
	}

	outcome := "valid"
	if len(result.RiskFlags) > 0 {
		outcome = "flagged"
	}
	span.SetAttributes(
		attribute.String("phone.region", result.Region),
		attribute.String("phone.line_type", result.LineType),
	)

	// E.164 so that formatting variants of one number share a history
	h.record(c, ctx, checkOutcome{
		kind:    models.CheckKindPhone,
		subject: phone.E164,
		masked:  observability.MaskPhone(phone.E164),
		valid:   true,
		outcome: outcome,
	})
	c.JSON(http.StatusOK, result)
}
