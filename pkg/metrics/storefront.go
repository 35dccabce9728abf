package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records engine mutations and catalog fetch outcomes.
type StorefrontMetrics struct {
	mutations           *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
	fetchDuration       *prometheus.HistogramVec
	fetchFailures       prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_mutations_total",
		Help: "Cart and wishlist mutations applied.",
	}, []string{"collection", "op"})
	persistenceFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_persistence_failures_total",
		Help: "Write-through persistence failures per collection.",
	}, []string{"collection"})
	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Duration of catalog fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	fetchFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_fetch_failures_total",
		Help: "Failed catalog fetches.",
	})
	reg.MustRegister(mutations, persistenceFailures, fetchDuration, fetchFailures)
	return &StorefrontMetrics{
		mutations:           mutations,
		persistenceFailures: persistenceFailures,
		fetchDuration:       fetchDuration,
		fetchFailures:       fetchFailures,
	}
}

// IncMutation increments the mutation counter for a collection operation.
func (m *StorefrontMetrics) IncMutation(collection, op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(collection), normalizeLabel(op)).Inc()
}

// IncPersistenceFailure increments the persistence failure counter.
func (m *StorefrontMetrics) IncPersistenceFailure(collection string) {
	if m == nil || m.persistenceFailures == nil {
		return
	}
	m.persistenceFailures.WithLabelValues(normalizeLabel(collection)).Inc()
}

// ObserveFetch records a catalog fetch duration with its outcome.
func (m *StorefrontMetrics) ObserveFetch(duration time.Duration, err error) {
	if m == nil || m.fetchDuration == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
		m.fetchFailures.Inc()
	}
	m.fetchDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
