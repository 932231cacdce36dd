package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Funds movement metrics
	Movements        *prometheus.CounterVec
	MovementDuration *prometheus.HistogramVec
	MovementAmount   *prometheus.HistogramVec
	MovementErrors   *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Retry metrics
	Retries prometheus.Counter

	// Idempotency metrics
	IdempotentReplays prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Movements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_funds_movements_total",
				Help: "Total funds movements by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		MovementDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankcore_funds_movement_duration_seconds",
				Help:    "Duration of funds movements including lock waits",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		MovementAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankcore_funds_movement_amount",
				Help:    "Amounts of committed funds movements",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"operation"},
		),
		MovementErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_funds_movement_errors_total",
				Help: "Total failed funds movements by error type",
			},
			[]string{"operation", "error_type"},
		),

		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankcore_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		Retries: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_retries_total",
			Help: "Funds movements retried after a transient lock conflict",
		}),

		IdempotentReplays: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_idempotent_replays_total",
			Help: "Requests answered from the idempotency store",
		}),
	}
}

// ObserveAccountCreated implements usecase.AccountMetrics.
func (m *Metrics) ObserveAccountCreated() {
	m.AccountsCreated.Inc()
}

// ObserveMovement implements usecase.FundsMetrics.
func (m *Metrics) ObserveMovement(operation string, amount decimal.Decimal, duration time.Duration, err error) {
	m.MovementDuration.WithLabelValues(operation).Observe(duration.Seconds())

	outcome := Outcome(err)
	m.Movements.WithLabelValues(operation, outcome).Inc()

	if err == nil {
		m.MovementAmount.WithLabelValues(operation).Observe(amount.InexactFloat64())
		return
	}

	m.MovementErrors.WithLabelValues(operation, ErrorType(err)).Inc()
}

// Outcome classifies err for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case domain.IsBusinessError(err):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}

// ErrorType returns a bounded label for err.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrStorageFailure):
		return "storage_failure"
	default:
		return "other"
	}
}
