package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/checkitsa/app-checkit/internal/middleware"
	"github.com/checkitsa/app-checkit/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeHistory struct {
	mu         sync.Mutex
	records    []models.CheckRecord
	count      int64
	countErr   error
	countKind  models.CheckKind
	countHash  string
	summary    *models.CheckSummary
	summaryErr error
	since      time.Time
}

func (f *fakeHistory) Record(record models.CheckRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeHistory) CountSubject(ctx context.Context, kind models.CheckKind, subjectHash string) (int64, error) {
	f.countKind = kind
	f.countHash = subjectHash
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

func (f *fakeHistory) Summary(ctx context.Context, since time.Time) (*models.CheckSummary, error) {
	f.since = since
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.summary, nil
}

func (f *fakeHistory) recorded() []models.CheckRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.CheckRecord(nil), f.records...)
}

func nopLogger() *logging.SafeLogger {
	return logging.NewSafeLogger(zap.NewNop())
}

// newTestRouter mounts handler at POST or GET path behind the request ID
// middleware, as in the API server.
func newTestRouter(method, path string, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Handle(method, path, handler)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "checkit-test/1.0")
	req.RemoteAddr = "198.51.100.7:40000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
