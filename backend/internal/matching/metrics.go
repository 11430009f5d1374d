package matching

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	apperrors "soulmate/backend/pkg/errors"
)

var (
	// OperationsTotal counts core operations by name and outcome
	// (ok, not_found, validation, precondition, storage).
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soulmate_operations_total",
			Help: "Total number of matching operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	// OperationDuration tracks latency of core operations including store round trips.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soulmate_operation_duration_seconds",
			Help:    "Duration of matching operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	// LikesTotal counts like actions by whether they completed a mutual match.
	LikesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soulmate_likes_total",
			Help: "Total number of likes recorded",
		},
		[]string{"result"}, // match, pending
	)

	// RecommendationResultSize tracks how many candidates are returned per request.
	RecommendationResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "soulmate_recommendation_results",
			Help:    "Number of recommendations returned per request",
			Buckets: prometheus.LinearBuckets(0, 2, 6),
		},
	)
)

// observe records the outcome and latency of one operation.
func observe(operation string, start time.Time, err error) {
	OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = string(apperrors.TypeOf(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
}
