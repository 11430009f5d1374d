package graph

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
	apperrors "soulmate/backend/pkg/errors"
)

var (
	// TransactionsTotal counts Neo4j transactions by access mode and outcome.
	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soulmate_neo4j_transactions_total",
			Help: "Total number of Neo4j transactions",
		},
		[]string{"mode", "outcome"},
	)

	// BreakerStateGauge is 0 closed, 1 half-open, 2 open.
	BreakerStateGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "soulmate_neo4j_breaker_state",
			Help: "Neo4j circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
	)
)

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case apperrors.TypeOf(err) != "":
		return string(apperrors.TypeOf(err))
	case errors.Is(err, gobreaker.ErrOpenState):
		return "rejected"
	default:
		return "error"
	}
}
