package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cipheratlas/geometry-engine/pkg/manifold"
	"github.com/cipheratlas/geometry-engine/pkg/observability"
)

func newTestMetrics() *Metrics {
	return NewMetrics(Config{
		Address:                 ":0",
		EnableDefaultCollectors: false,
		ServiceName:             "cipher-geometry-test",
	})
}

func TestObserveOperationCountsOutcomes(t *testing.T) {
	m := newTestMetrics()

	m.ObserveOperation(observability.OperationContext{
		Component: "cache",
		Operation: "get",
		Duration:  5 * time.Millisecond,
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "cache",
		Operation: "get",
		Duration:  5 * time.Millisecond,
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "bus",
		Operation: "publish",
		Err:       errors.New("broker down"),
	})

	if got := testutil.ToFloat64(m.operationsTotal.WithLabelValues("cache", "get", "success")); got != 2 {
		t.Errorf("cache get success = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.operationsTotal.WithLabelValues("bus", "publish", "error")); got != 1 {
		t.Errorf("bus publish error = %v, want 1", got)
	}
}

func TestRecordComputation(t *testing.T) {
	m := newTestMetrics()

	result := manifold.Metrics{Classification: manifold.Hyperbolic}
	m.RecordComputation(result, manifold.ModeExact, 30*time.Millisecond)
	m.RecordComputation(result, manifold.ModeExact, 40*time.Millisecond)

	if got := testutil.ToFloat64(m.computationsTotal.WithLabelValues("hyperbolic", "exact")); got != 2 {
		t.Errorf("computations = %v, want 2", got)
	}
}

func TestRecordCacheResult(t *testing.T) {
	m := newTestMetrics()

	m.RecordCacheResult("hit")
	m.RecordCacheResult("miss")
	m.RecordCacheResult("miss")

	if got := testutil.ToFloat64(m.cacheResultsTotal.WithLabelValues("miss")); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.cacheResultsTotal.WithLabelValues("hit")); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
}

func TestRegistryGathers(t *testing.T) {
	m := newTestMetrics()
	m.RecordCacheResult("hit")

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "metrics_cache_results_total" {
			found = true
		}
	}
	if !found {
		t.Error("metrics_cache_results_total not registered")
	}
}
