package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ledger metrics
	DepositsCompleted prometheus.Counter
	DepositAmount     prometheus.Histogram
	DepositErrors     *prometheus.CounterVec
	AccountsOpened    prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttempts  *prometheus.CounterVec
	RateLimitHits prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		DepositsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_deposits_completed_total",
			Help: "Total number of completed deposits",
		}),
		DepositAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobank_deposit_amount",
			Help:    "Deposit amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),
		DepositErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_deposit_errors_total",
				Help: "Total number of deposit errors by type",
			},
			[]string{"error_type"},
		),
		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobank_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		RateLimitHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_rate_limit_hits_total",
			Help: "Total rate limit hits",
		}),
	}
}
