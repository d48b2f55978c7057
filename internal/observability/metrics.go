// Package observability collects the prometheus metrics for mediadesk:
// cache behaviour, mutation outcomes, stream throughput, and HTTP latency.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics manages all collectors. A nil *Metrics is valid and records
// nothing, so components can take it as an optional dependency.
type Metrics struct {
	registry *prometheus.Registry

	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	reconciliations *prometheus.CounterVec
	mutations       *prometheus.CounterVec
	streamChunks    prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// New creates a metrics collector with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mediadesk_cache_hits_total",
			Help: "Collection and by-ID cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mediadesk_cache_misses_total",
			Help: "Collection and by-ID cache misses.",
		}),
		reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mediadesk_reconciliations_total",
			Help: "Cache reconciliations applied after mutations.",
		}, []string{"kind"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mediadesk_mutations_total",
			Help: "Resource mutations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		streamChunks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mediadesk_stream_chunks_total",
			Help: "Cumulative chunks consumed by streaming edit sessions.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mediadesk_http_request_duration_seconds",
			Help:    "HTTP request duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	registry.MustRegister(
		m.cacheHits,
		m.cacheMisses,
		m.reconciliations,
		m.mutations,
		m.streamChunks,
		m.requestDuration,
	)
	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) CacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

func (m *Metrics) Reconciliation(kind string) {
	if m != nil {
		m.reconciliations.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) Mutation(kind, outcome string) {
	if m != nil {
		m.mutations.WithLabelValues(kind, outcome).Inc()
	}
}

func (m *Metrics) StreamChunk() {
	if m != nil {
		m.streamChunks.Inc()
	}
}

func (m *Metrics) ObserveRequest(method, path, status string, elapsed time.Duration) {
	if m != nil {
		m.requestDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
	}
}
