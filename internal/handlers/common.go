package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/checkitsa/app-checkit/internal/middleware"
	"github.com/checkitsa/app-checkit/internal/models"
	"github.com/checkitsa/app-checkit/internal/observability"
	"github.com/checkitsa/app-checkit/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TimesCheckedHeader carries how many earlier checks of the same subject
// are on record.
const TimesCheckedHeader = "X-Times-Checked"

const countTimeout = 500 * time.Millisecond

// ErrorResponse is returned for request errors outside the verification verdicts
type ErrorResponse struct {
	Error string `json:"error"`
}

// CheckHistory is the part of the check history service used by handlers
type CheckHistory interface {
	Record(record models.CheckRecord) error
	CountSubject(ctx context.Context, kind models.CheckKind, subjectHash string) (int64, error)
	Summary(ctx context.Context, since time.Time) (*models.CheckSummary, error)
}

// checkOutcome describes a finished verification for metrics and history
type checkOutcome struct {
	kind    models.CheckKind
	subject string
	masked  string
	valid   bool
	reason  string
	outcome string
}

// checkRecorder counts verifications and writes them to the history. A nil
// history disables persistence and the times-checked header.
type checkRecorder struct {
	history CheckHistory
	logger  *logging.SafeLogger
}

// record must run before the response body is written so the header lands.
func (r checkRecorder) record(c *gin.Context, ctx context.Context, o checkOutcome) {
	observability.Verifications.WithLabelValues(string(o.kind), o.outcome).Inc()
	if r.history == nil {
		return
	}

	hash := models.HashSubject(o.kind, o.subject)

	countCtx, cancel := context.WithTimeout(ctx, countTimeout)
	countCtx, span := utils.TraceDatabaseCount(countCtx, "checks")
	count, err := r.history.CountSubject(countCtx, o.kind, hash)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"check.kind": string(o.kind)})
		r.logger.Warn("failed to count previous checks",
			zap.String("kind", string(o.kind)),
			zap.Error(err))
	} else {
		c.Header(TimesCheckedHeader, strconv.FormatInt(count, 10))
	}
	span.End()
	cancel()

	err = r.history.Record(models.CheckRecord{
		Kind:          o.kind,
		SubjectHash:   hash,
		SubjectMasked: o.masked,
		Valid:         o.valid,
		Reason:        o.reason,
		IPAddress:     c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
		RequestID:     c.GetString(middleware.RequestIDKey),
	})
	if err != nil {
		r.logger.Warn("check not recorded",
			zap.String("kind", string(o.kind)),
			zap.Error(err))
	}
}
