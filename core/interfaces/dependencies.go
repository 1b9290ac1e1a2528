// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache provides caching functionality
	Cache Cache

	// HTTPClient provides HTTP request functionality
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Metrics receives operational measurements; nil means discard
	Metrics MetricsRecorder
}

// MetricsOrNoop returns the configured recorder or a discarding one
func (d Dependencies) MetricsOrNoop() MetricsRecorder {
	if d.Metrics == nil {
		return NoopMetrics{}
	}
	return d.Metrics
}
