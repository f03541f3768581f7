package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/muadel/muadel/adapters/metrics"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	if m == nil {
		t.Fatal("NewWithRegistry returned nil")
	}

	m.LedgerChecks.WithLabelValues("summary", "true").Inc()
	m.LedgerDenials.WithLabelValues("summary").Inc()
	m.UsageRecorded.WithLabelValues("summary").Inc()
	m.CompletionCalls.WithLabelValues("summary").Inc()
	m.CompletionFallbacks.WithLabelValues("summary").Inc()
	m.CacheHits.WithLabelValues("summary").Inc()
	m.CacheMisses.WithLabelValues("summary").Inc()
	m.StoreFailures.WithLabelValues("read").Inc()
	m.ConfigReloads.Inc()
	m.ConfigReloadErrors.Inc()

	if got := testutil.ToFloat64(m.LedgerDenials.WithLabelValues("summary")); got != 1 {
		t.Errorf("LedgerDenials = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ConfigReloads); got != 1 {
		t.Errorf("ConfigReloads = %v, want 1", got)
	}
}

func TestTwoCollectorsOnSeparateRegistries(t *testing.T) {
	// Must not panic with duplicate registration.
	_ = metrics.NewWithRegistry(prometheus.NewRegistry())
	_ = metrics.NewWithRegistry(prometheus.NewRegistry())
}
