package interfaces

import "time"

// MetricsRecorder receives operational measurements from core services.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	// ObserveUpstream records one upstream call and its outcome
	ObserveUpstream(source, outcome string, duration time.Duration)

	// SetConsecutiveFailures publishes the backoff gate counter for a source
	SetConsecutiveFailures(source string, failures int)

	// IncCollection counts a finished long-tail collection by result origin
	IncCollection(origin string)

	// IncEnrichment counts an enrichment attempt by outcome
	IncEnrichment(outcome string)

	// SetBreakerState publishes a circuit breaker state (closed, half-open, open)
	SetBreakerState(name, state string)
}

// NoopMetrics discards every measurement
type NoopMetrics struct{}

func (NoopMetrics) ObserveUpstream(string, string, time.Duration) {}
func (NoopMetrics) SetConsecutiveFailures(string, int)            {}
func (NoopMetrics) IncCollection(string)                          {}
func (NoopMetrics) IncEnrichment(string)                          {}
func (NoopMetrics) SetBreakerState(string, string)                {}
