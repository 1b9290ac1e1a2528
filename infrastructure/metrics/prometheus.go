// ABOUTME: Prometheus implementation of the core metrics recorder
// ABOUTME: Owns a private registry exposed through the /metrics handler

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "keywords"

// Recorder publishes upstream, gate, collection and breaker measurements
type Recorder struct {
	registry *prometheus.Registry

	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	gateFailures     *prometheus.GaugeVec
	collections      *prometheus.CounterVec
	enrichments      *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec
}

// NewRecorder creates a recorder with its own registry. Process and Go
// runtime collectors are registered alongside the keyword metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream calls by source and outcome",
		}, []string{"source", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream call latency by source",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		gateFailures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backoff_consecutive_failures",
			Help:      "Consecutive failures counted by the backoff gate",
		}, []string{"source"}),
		collections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "longtail_collections_total",
			Help:      "Finished long-tail collections by result origin",
		}, []string{"origin"}),
		enrichments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "longtail_enrichments_total",
			Help:      "Candidate enrichment attempts by outcome",
		}, []string{"outcome"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		}, []string{"name"}),
	}

	r.registry.MustRegister(
		r.upstreamCalls,
		r.upstreamDuration,
		r.gateFailures,
		r.collections,
		r.enrichments,
		r.breakerState,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveUpstream(source, outcome string, duration time.Duration) {
	r.upstreamCalls.WithLabelValues(source, outcome).Inc()
	// rejected and throttled calls never reach the network
	if duration > 0 {
		r.upstreamDuration.WithLabelValues(source).Observe(duration.Seconds())
	}
}

func (r *Recorder) SetConsecutiveFailures(source string, failures int) {
	r.gateFailures.WithLabelValues(source).Set(float64(failures))
}

func (r *Recorder) IncCollection(origin string) {
	r.collections.WithLabelValues(origin).Inc()
}

func (r *Recorder) IncEnrichment(outcome string) {
	r.enrichments.WithLabelValues(outcome).Inc()
}

func (r *Recorder) SetBreakerState(name, state string) {
	r.breakerState.WithLabelValues(name).Set(stateToFloat(state))
}

func stateToFloat(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
