// Package metrics holds the Prometheus instruments for the service. All
// methods tolerate a nil receiver so tests can pass no metrics at all.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Exchange outcome label values.
const (
	OutcomeSuccess                 = "success"
	OutcomeInvalidRequest          = "invalid_request"
	OutcomeAccountsUnavailable     = "accounts_unavailable"
	OutcomeRatesUnavailable        = "rates_unavailable"
	OutcomeTransactionsUnavailable = "transactions_unavailable"
)

// Metrics bundles every instrument the use cases touch.
type Metrics struct {
	AccountsCreated         prometheus.Counter
	StartingBalanceUnbooked prometheus.Counter
	Exchanges               *prometheus.CounterVec
	RateLookupDuration      prometheus.Histogram
}

// New registers all instruments with the given registerer. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate-registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "kantor_accounts_created_total",
			Help: "Total number of accounts created.",
		}),
		StartingBalanceUnbooked: factory.NewCounter(prometheus.CounterOpts{
			Name: "kantor_starting_balance_unbooked_total",
			Help: "Starting-balance postings that failed to book after account creation succeeded.",
		}),
		Exchanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kantor_exchanges_total",
			Help: "Exchange requests by outcome.",
		}, []string{"outcome"}),
		RateLookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kantor_rate_lookup_duration_seconds",
			Help:    "Latency of conversion-factor lookups, cache hits included.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncAccountsCreated() {
	if m == nil {
		return
	}
	m.AccountsCreated.Inc()
}

func (m *Metrics) IncStartingBalanceUnbooked() {
	if m == nil {
		return
	}
	m.StartingBalanceUnbooked.Inc()
}

func (m *Metrics) IncExchange(outcome string) {
	if m == nil {
		return
	}
	m.Exchanges.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRateLookup(d time.Duration) {
	if m == nil {
		return
	}
	m.RateLookupDuration.Observe(d.Seconds())
}
