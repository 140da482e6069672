package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cipheratlas/geometry-engine/pkg/manifold"
	"github.com/cipheratlas/geometry-engine/pkg/observability"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics.
//
// It also implements observability.Observer, so infrastructure clients
// (cache, bus, vector store) report their operations here without
// depending on prometheus directly.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// The service maintains its own isolated registry to prevent metric
	// name collisions.
	Registry *prometheus.Registry

	computationsTotal   *prometheus.CounterVec
	computationDuration *prometheus.HistogramVec
	cacheResultsTotal   *prometheus.CounterVec
	operationsTotal     *prometheus.CounterVec
	operationDuration   *prometheus.HistogramVec
}

// NewMetrics initializes a dedicated registry, registers the geometry
// engine instruments plus optional default collectors, and creates the
// HTTP server exposing /metrics for Prometheus scraping.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.computationsTotal = createCounterVec(
		"manifold_computations_total",
		"Total number of manifold computations by classification and mode",
		[]string{"classification", "mode"},
	)
	m.computationDuration = createHistogramVec(
		"manifold_computation_duration_seconds",
		"Duration of manifold computations in seconds",
		[]string{"mode"},
		prometheus.DefBuckets,
	)
	m.cacheResultsTotal = createCounterVec(
		"metrics_cache_results_total",
		"Cache lookups by outcome (hit, miss)",
		[]string{"outcome"},
	)
	m.operationsTotal = createCounterVec(
		"client_operations_total",
		"Infrastructure client operations by component, operation and outcome",
		[]string{"component", "operation", "outcome"},
	)
	m.operationDuration = createHistogramVec(
		"client_operation_duration_seconds",
		"Duration of infrastructure client operations in seconds",
		[]string{"component", "operation"},
		prometheus.DefBuckets,
	)

	wrappedRegistry.MustRegister(
		m.computationsTotal,
		m.computationDuration,
		m.cacheResultsTotal,
		m.operationsTotal,
		m.operationDuration,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	server := &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	m.Server = server
	return m
}

// RecordComputation counts one finished manifold computation.
func (m *Metrics) RecordComputation(result manifold.Metrics, mode manifold.Mode, duration time.Duration) {
	m.computationsTotal.WithLabelValues(string(result.Classification), string(mode)).Inc()
	m.computationDuration.WithLabelValues(string(mode)).Observe(duration.Seconds())
}

// RecordCacheResult counts a cache lookup outcome, "hit" or "miss".
func (m *Metrics) RecordCacheResult(outcome string) {
	m.cacheResultsTotal.WithLabelValues(outcome).Inc()
}

// ObserveOperation implements observability.Observer. Each reported
// operation increments a counter labelled by outcome and feeds the
// duration histogram.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	outcome := "success"
	if op.Err != nil {
		outcome = "error"
	}
	m.operationsTotal.WithLabelValues(op.Component, op.Operation, outcome).Inc()
	m.operationDuration.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())
}
