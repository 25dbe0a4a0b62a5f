package handlers

import (
	"net/http"
	"time"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/checkitsa/app-checkit/internal/models"
	"github.com/checkitsa/app-checkit/internal/observability"
	"github.com/checkitsa/app-checkit/internal/utils"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// IDHandlers serves South African ID number verification
type IDHandlers struct {
	checkRecorder
	now func() time.Time
}

// NewIDHandlers creates ID verification handlers. history may be nil.
func NewIDHandlers(history CheckHistory, logger *logging.SafeLogger) *IDHandlers {
	return &IDHandlers{
		checkRecorder: checkRecorder{history: history, logger: logger},
		now:           time.Now,
	}
}

// VerifyID godoc
// @Summary Verify a South African ID number
// @Description Checks that the ID number is 13 digits with a valid Luhn check digit and decodes date of birth, gender and citizenship. Invalid numbers are a normal 200 response with valid=false.
// @Tags verify
// @Accept json
// @Produce json
// @Param data body models.IdVerificationRequest true "ID number"
// @Success 200 {object} models.IdVerificationResult
// @Failure 400 {object} models.IdVerificationResult
// @Failure 429 {object} ErrorResponse
// @Router /verify/id [post]
func (h *IDHandlers) VerifyID(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "VerifyID")
	defer span.End()

	_, parseSpan := utils.TraceInputParsing(ctx, "id_verification_request")
	var req models.IdVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(parseSpan, err, nil)
		parseSpan.End()

		result := models.NewMalformedRequestResult()
		observability.Verifications.WithLabelValues(string(models.CheckKindID), result.Outcome()).Inc()
		h.logger.Debug("malformed id verification request", zap.Error(err))
		c.JSON(http.StatusBadRequest, result)
		return
	}
	parseSpan.End()

	idNumber := *req.IDNumber

	_, validateSpan := utils.TraceInputValidation(ctx, "sa_id")
	result := utils.ValidateSAIDAt(idNumber, h.now())
	validateSpan.SetAttributes(
		attribute.Bool("validation.valid", result.Valid),
		attribute.String("validation.outcome", result.Outcome()),
	)
	validateSpan.End()

	span.SetAttributes(attribute.String("verify.outcome", result.Outcome()))

	h.logger.Debug("id verification",
		zap.String("id_number", observability.MaskIDNumber(idNumber)),
		zap.String("outcome", result.Outcome()))

	h.record(c, ctx, checkOutcome{
		kind:    models.CheckKindID,
		subject: idNumber,
		masked:  observability.MaskIDNumber(idNumber),
		valid:   result.Valid,
		reason:  result.Reason,
		outcome: result.Outcome(),
	})

	c.JSON(http.StatusOK, result)
}
