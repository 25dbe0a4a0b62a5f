package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "checkitsa_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// Verifications counts checks by kind (id, phone, email) and outcome
	Verifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkitsa_verifications_total",
			Help: "Number of verification checks performed",
		},
		[]string{"kind", "outcome"},
	)

	// RateLimited counts requests rejected by the rate limiter
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkitsa_rate_limited_total",
			Help: "Number of requests rejected by the rate limiter",
		},
		[]string{"path"},
	)

	// HistoryRecords tracks check history persistence
	HistoryRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkitsa_history_records_total",
			Help: "Number of check history records by status",
		},
		[]string{"status"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkitsa_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "checkitsa_active_connections",
			Help: "Number of active connections",
		},
	)
)
