// Package graph implements store.Store on Neo4j.
//
// Every unit of work runs in one managed transaction on its own session, and
// every transaction passes through a circuit breaker so a dead database fails
// fast with a StorageError instead of piling up on driver timeouts.
package graph

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"soulmate/backend/internal/store"
	apperrors "soulmate/backend/pkg/errors"
	"soulmate/backend/pkg/logger"
)

const constraintViolation = "Neo.ClientError.Schema.ConstraintValidationFailed"

// Options configures a Repository. Zero values take the defaults.
type Options struct {
	Database                string
	TxTimeout               time.Duration
	BreakerFailureThreshold uint32
	BreakerTimeout          time.Duration
}

// Repository handles all Neo4j database operations
type Repository struct {
	driver    neo4j.DriverWithContext
	database  string
	txTimeout time.Duration
	breaker   *gobreaker.CircuitBreaker[interface{}]
	closed    atomic.Bool
	logger    *zap.Logger
}

var _ store.Store = (*Repository)(nil)

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext, opts Options) *Repository {
	if opts.BreakerFailureThreshold == 0 {
		opts.BreakerFailureThreshold = 5
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}

	r := &Repository{
		driver:    driver,
		database:  opts.Database,
		txTimeout: opts.TxTimeout,
		logger:    logger.Named("graph"),
	}
	r.breaker = newBreaker(opts.BreakerFailureThreshold, opts.BreakerTimeout, r.logger)
	return r
}

func newBreaker(threshold uint32, timeout time.Duration, log *zap.Logger) *gobreaker.CircuitBreaker[interface{}] {
	settings := gobreaker.Settings{
		Name:        "neo4j",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// domain errors mean the database answered
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			t := apperrors.TypeOf(err)
			return t != "" && t != apperrors.ErrorTypeStorage
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			BreakerStateGauge.Set(float64(to))
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return gobreaker.NewCircuitBreaker[interface{}](settings)
}

// Read runs fn in a read transaction.
func (r *Repository) Read(ctx context.Context, fn func(tx store.ReadTx) error) error {
	return r.execute(ctx, "read", neo4j.AccessModeRead, func(tx neo4j.ManagedTransaction) error {
		return fn(&readTx{tx: tx})
	})
}

// Write runs fn in a write transaction. The driver may retry fn on transient
// errors, so fn must not leak state between attempts.
func (r *Repository) Write(ctx context.Context, fn func(tx store.WriteTx) error) error {
	return r.execute(ctx, "write", neo4j.AccessModeWrite, func(tx neo4j.ManagedTransaction) error {
		return fn(&writeTx{readTx{tx: tx}})
	})
}

func (r *Repository) execute(ctx context.Context, op string, mode neo4j.AccessMode, work func(neo4j.ManagedTransaction) error) error {
	if r.closed.Load() {
		return apperrors.NewStorage(op, fmt.Errorf("repository closed"))
	}

	var configurers []func(*neo4j.TransactionConfig)
	if r.txTimeout > 0 {
		configurers = append(configurers, neo4j.WithTxTimeout(r.txTimeout))
	}

	_, err := r.breaker.Execute(func() (interface{}, error) {
		session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode, DatabaseName: r.database})
		defer session.Close(ctx)

		txWork := func(tx neo4j.ManagedTransaction) (any, error) {
			return nil, work(tx)
		}
		if mode == neo4j.AccessModeRead {
			return session.ExecuteRead(ctx, txWork, configurers...)
		}
		return session.ExecuteWrite(ctx, txWork, configurers...)
	})
	TransactionsTotal.WithLabelValues(op, outcome(err)).Inc()
	if err != nil {
		err = classify(op, err)
		if apperrors.IsStorage(err) {
			r.logger.Error("Neo4j transaction failed", zap.String("operation", op), zap.Error(err))
		}
	}
	return err
}

// classify maps driver and breaker errors onto the application error types.
func classify(op string, err error) error {
	if err == nil || apperrors.TypeOf(err) != "" {
		return err
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperrors.NewStorage(op, fmt.Errorf("neo4j unavailable: %w", err))
	}
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) && neoErr.Code == constraintViolation {
		return apperrors.NewConflict("node", neoErr.Msg)
	}
	return apperrors.NewStorage(op, err)
}

// Ping verifies the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.driver.VerifyConnectivity(ctx); err != nil {
		return apperrors.NewStorage("ping", err)
	}
	return nil
}

// BreakerState reports the circuit breaker state (closed, half-open, open).
func (r *Repository) BreakerState() string {
	return r.breaker.State().String()
}

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	if r.closed.Swap(true) {
		return nil
	}
	return r.driver.Close(ctx)
}
