package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHealthCheck(t *testing.T, checks map[string]HealthCheckFunc) (int, HealthResponse) {
	t.Helper()
	h := NewHealthHandlers(checks, nopLogger())
	router := newTestRouter(http.MethodGet, "/v1/health", h.HealthCheck)

	req, _ := http.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	return w.Code, health
}

func ok(ctx context.Context) error { return nil }

func TestHealthCheck_Healthy(t *testing.T) {
	code, health := runHealthCheck(t, map[string]HealthCheckFunc{
		"mongodb": ok,
		"redis":   ok,
	})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, map[string]string{"mongodb": "healthy", "redis": "healthy"}, health.Services)
	assert.False(t, health.Timestamp.IsZero())
}

func TestHealthCheck_DependencyDown(t *testing.T) {
	code, health := runHealthCheck(t, map[string]HealthCheckFunc{
		"mongodb": ok,
		"redis":   func(ctx context.Context) error { return errors.New("dial tcp: connection refused") },
	})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", health.Status)
	assert.Equal(t, "healthy", health.Services["mongodb"])
	assert.Equal(t, "unhealthy", health.Services["redis"])
}

func TestHealthCheck_ChecksRunWithDeadline(t *testing.T) {
	var hadDeadline bool
	runHealthCheck(t, map[string]HealthCheckFunc{
		"mongodb": func(ctx context.Context) error {
			_, hadDeadline = ctx.Deadline()
			return nil
		},
	})

	assert.True(t, hadDeadline)
}

func TestHealthCheck_NoDependencies(t *testing.T) {
	code, health := runHealthCheck(t, nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, health.Services)
}
