// ABOUTME: Generation configuration for service-level control of optional steps
// ABOUTME: Provides functional options independent of HTTP request structures

package config

const (
	// DefaultMaxCandidates caps the deduplicated candidate list
	DefaultMaxCandidates = 20

	// DefaultEnrichmentLimit is how many leading candidates get volume lookups
	DefaultEnrichmentLimit = 10
)

// GenerateConfig controls one long-tail generation run
type GenerateConfig struct {
	// IncludeVolume controls whether candidates are enriched with metrics
	IncludeVolume bool

	// MaxCandidates caps the result after deduplication
	MaxCandidates int

	// EnrichmentLimit caps how many candidates are enriched
	EnrichmentLimit int
}

// DefaultGenerateConfig returns the default configuration with enrichment disabled
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		IncludeVolume:   false,
		MaxCandidates:   DefaultMaxCandidates,
		EnrichmentLimit: DefaultEnrichmentLimit,
	}
}

// GenerateOption is a functional option for configuring generation
type GenerateOption func(*GenerateConfig)

// WithVolumeEnrichment enables or disables volume enrichment
func WithVolumeEnrichment(enabled bool) GenerateOption {
	return func(c *GenerateConfig) {
		c.IncludeVolume = enabled
	}
}

// WithoutVolumeEnrichment disables volume enrichment
func WithoutVolumeEnrichment() GenerateOption {
	return WithVolumeEnrichment(false)
}

// WithEnrichmentLimit overrides how many candidates are enriched
func WithEnrichmentLimit(n int) GenerateOption {
	return func(c *GenerateConfig) {
		if n >= 0 && n <= c.MaxCandidates {
			c.EnrichmentLimit = n
		}
	}
}

// NewGenerateConfig creates a generation configuration with the given options
func NewGenerateConfig(opts ...GenerateOption) GenerateConfig {
	config := DefaultGenerateConfig()

	for _, opt := range opts {
		opt(&config)
	}

	return config
}
