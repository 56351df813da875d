// Package metrics exposes Prometheus metrics for the settleup server.
//
// All methods are safe to call on a nil *Metrics, which records nothing.
// This keeps tests and tools free of registry plumbing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "settleup"

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests         *prometheus.CounterVec
	rpcDuration         *prometheus.HistogramVec
	suggestedPayments   prometheus.Histogram
	settlementsRecorded prometheus.Counter
	partialAggregates   prometheus.Counter
}

// New creates a Metrics with its own registry, including Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC requests by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		suggestedPayments: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "suggested_payments",
			Help:      "Number of payments produced per simplification.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
		}),
		settlementsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_recorded_total",
			Help:      "Settlements written to storage.",
		}),
		partialAggregates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partial_aggregates_total",
			Help:      "Overall balance queries that skipped at least one group.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.suggestedPayments,
		m.settlementsRecorded,
		m.partialAggregates,
	)
	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// ObserveSuggestions records the size of one simplification result.
func (m *Metrics) ObserveSuggestions(n int) {
	if m == nil {
		return
	}
	m.suggestedPayments.Observe(float64(n))
}

// SettlementRecorded counts a stored settlement.
func (m *Metrics) SettlementRecorded() {
	if m == nil {
		return
	}
	m.settlementsRecorded.Inc()
}

// PartialAggregate counts an overall balance that is missing groups.
func (m *Metrics) PartialAggregate() {
	if m == nil {
		return
	}
	m.partialAggregates.Inc()
}
