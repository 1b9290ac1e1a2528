// ABOUTME: Configuration options for the Keywords library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package keywords

import (
	"time"

	"keywords-app-api/core/config"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/longtail"
	"keywords-app-api/core/workers"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithCache sets a custom cache implementation for trend snapshots
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithStore sets where collected keywords are persisted
func WithStore(store interfaces.KeywordStore) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

// WithNaverCredentials enables volume enrichment through the Naver search ads API
func WithNaverCredentials(apiKey, secretKey, customerID string) Option {
	return func(c *Config) error {
		if apiKey == "" || secretKey == "" || customerID == "" {
			return NewError(ErrorTypeConfiguration, "naver credentials require api key, secret key and customer id")
		}
		c.Naver = NaverCredentials{APIKey: apiKey, SecretKey: secretKey, CustomerID: customerID}
		return nil
	}
}

// WithSerpAPIKey enables SerpAPI as the primary trends provider
func WithSerpAPIKey(key string) Option {
	return func(c *Config) error {
		c.SerpAPIKey = key
		return nil
	}
}

// WithGeo sets the trends region code
func WithGeo(geo string) Option {
	return func(c *Config) error {
		if geo == "" {
			return NewError(ErrorTypeValidation, "geo cannot be empty")
		}
		c.Geo = geo
		return nil
	}
}

// WithSuggestionSource replaces the Naver autocomplete client
func WithSuggestionSource(src interfaces.SuggestionSource) Option {
	return func(c *Config) error {
		c.Suggestions = src
		return nil
	}
}

// WithMetricsSource replaces the Naver ads client used for enrichment
func WithMetricsSource(src interfaces.MetricsSource) Option {
	return func(c *Config) error {
		c.Metrics = src
		return nil
	}
}

// WithTrendsSource replaces the trends provider
func WithTrendsSource(src interfaces.TrendsSource) Option {
	return func(c *Config) error {
		c.Trends = src
		return nil
	}
}

// WithEnrichmentDelay sets the pause between metrics lookups
func WithEnrichmentDelay(d time.Duration) Option {
	return func(c *Config) error {
		if d < 0 {
			return NewError(ErrorTypeValidation, "enrichment delay cannot be negative")
		}
		c.EnrichmentDelay = d
		return nil
	}
}

// WithWorkerConfig sets the batch worker pool configuration
func WithWorkerConfig(cfg workers.WorkerConfig) Option {
	return func(c *Config) error {
		c.WorkerConfig = cfg
		return nil
	}
}

// WithTrendsCacheTTL sets how long a trends snapshot is reused
func WithTrendsCacheTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		c.TrendsCacheTTL = ttl
		return nil
	}
}

// GenerateOption configures one long-tail generation
type GenerateOption = config.GenerateOption

// WithVolume enables search volume enrichment for the leading candidates
func WithVolume() GenerateOption {
	return config.WithVolumeEnrichment(true)
}

// WithEnrichmentLimit caps how many candidates are enriched
func WithEnrichmentLimit(n int) GenerateOption {
	return config.WithEnrichmentLimit(n)
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Cache:           DefaultMemoryCache(),
		HTTPClient:      DefaultHTTPClient(),
		Logger:          QuietLogger(),
		Store:           DefaultStore(),
		Geo:             "KR",
		EnrichmentDelay: longtail.DefaultEnrichmentDelay,
		WorkerConfig:    workers.DefaultWorkerConfig(),
		TrendsCacheTTL:  time.Hour,
	}
}
