package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scamshield"

// Metrics holds the gateway's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	scans           *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	outboxPending   prometheus.Gauge
	cacheLookups    *prometheus.CounterVec
}

// New creates the collectors on a private registry, together with the
// standard Go runtime and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Scans served, by input kind and analyzer source.",
		}, []string{"kind", "source"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Operations answered locally because the backend failed, by kind and error reason.",
		}, []string{"kind", "reason"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of calls to the remote backend.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"endpoint", "outcome"}),
		outboxPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outbox_pending",
			Help:      "Submissions waiting for redelivery.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdict_cache_lookups_total",
			Help:      "Verdict cache lookups, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.scans,
		m.fallbacks,
		m.backendDuration,
		m.outboxPending,
		m.cacheLookups,
	)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveScan counts a served scan
func (m *Metrics) ObserveScan(kind, source string) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(kind, source).Inc()
}

// ObserveFallback counts a locally answered operation
func (m *Metrics) ObserveFallback(kind, reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(kind, reason).Inc()
}

// ObserveBackendRequest records the latency of one backend call
func (m *Metrics) ObserveBackendRequest(endpoint, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.backendDuration.WithLabelValues(endpoint, outcome).Observe(d.Seconds())
}

// SetOutboxPending sets the number of queued submissions
func (m *Metrics) SetOutboxPending(n int) {
	if m == nil {
		return
	}
	m.outboxPending.Set(float64(n))
}

// ObserveCacheLookup counts a verdict cache hit or miss
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
