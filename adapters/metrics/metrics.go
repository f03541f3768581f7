// Package metrics provides Prometheus metrics collection.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for the core services.
type Collector struct {
	// Ledger metrics
	LedgerChecks  *prometheus.CounterVec
	LedgerDenials *prometheus.CounterVec
	UsageRecorded *prometheus.CounterVec

	// Completion metrics
	CompletionCalls     *prometheus.CounterVec
	CompletionFallbacks *prometheus.CounterVec
	CacheHits           *prometheus.CounterVec
	CacheMisses         *prometheus.CounterVec

	// Persistence metrics
	StoreFailures *prometheus.CounterVec

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter
}

// New creates a collector registered on the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a collector on a custom registry. Tests use
// this to avoid duplicate-registration panics.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		LedgerChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "muadel",
				Name:      "ledger_checks_total",
				Help:      "Usage ledger checks by feature and outcome",
			},
			[]string{"feature", "allowed"},
		),
		LedgerDenials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "muadel",
				Name:      "ledger_denials_total",
				Help:      "Usage ledger denials by feature",
			},
			[]string{"feature"},
		),
		UsageRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "muadel",
				Name:      "usage_recorded_total",
				Help:      "Recorded gated-feature uses by feature",
			},
			[]string{"feature"},
		),
		CompletionCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "muadel",
				Name:      "completion_calls_total",
				Help:      "Completion proxy calls by feature",
			},
			[]string{"feature"},
		),
		CompletionFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "muadel",
				Name:      "completion_fallbacks_total",
				Help:      "Completions resolved by the local fallback",
			},
			[]string{"feature"},
		),
		CacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "muadel",
				Name:      "response_cache_hits_total",
				Help:      "Response cache hits by feature",
			},
			[]string{"feature"},
		),
		CacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "muadel",
				Name:      "response_cache_misses_total",
				Help:      "Response cache misses by feature",
			},
			[]string{"feature"},
		),
		StoreFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "muadel",
				Name:      "store_failures_total",
				Help:      "Key-value store failures by operation",
			},
			[]string{"op"},
		),
		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "muadel",
				Name:      "config_reloads_total",
				Help:      "Successful configuration reloads",
			},
		),
		ConfigReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "muadel",
				Name:      "config_reload_errors_total",
				Help:      "Failed configuration reloads",
			},
		),
	}
}
