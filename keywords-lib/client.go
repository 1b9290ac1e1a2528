// ABOUTME: Main client for the Keywords library providing long-tail expansion and trends
// ABOUTME: Offers a clean API for using core functionality without HTTP dependencies

package keywords

import (
	"context"
	"sync"
	"time"

	"keywords-app-api/core/collect"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/longtail"
	"keywords-app-api/core/workers"
	"keywords-app-api/infrastructure/sources/googlerss"
	"keywords-app-api/infrastructure/sources/naver"
	"keywords-app-api/infrastructure/sources/serpapi"
)

// NaverCredentials authenticate against the Naver search ads API
type NaverCredentials struct {
	APIKey     string
	SecretKey  string
	CustomerID string
}

// Config holds the configuration for the client
type Config struct {
	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Logger     interfaces.Logger
	Store      interfaces.KeywordStore

	// Naver enables volume enrichment when all fields are set
	Naver NaverCredentials

	// SerpAPIKey enables SerpAPI as the primary trends provider
	SerpAPIKey string
	Geo        string

	// Source overrides. When nil, sources are built from the settings above.
	Suggestions interfaces.SuggestionSource
	Metrics     interfaces.MetricsSource
	Trends      interfaces.TrendsSource

	EnrichmentDelay time.Duration
	TrendsCacheTTL  time.Duration
	WorkerConfig    workers.WorkerConfig
}

// Client is the main entry point for the Keywords library
type Client struct {
	longtail *longtail.Service
	trends   *collect.TrendsService
	pool     *workers.LongtailWorker

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a new Keywords client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		HTTPClient: config.HTTPClient,
		Cache:      config.Cache,
		Logger:     config.Logger,
	}

	if err := buildSources(&config); err != nil {
		return nil, err
	}

	longtailOpts := []longtail.ServiceOption{
		longtail.WithStore(config.Store),
		longtail.WithEnrichmentDelay(config.EnrichmentDelay),
	}
	if config.Metrics != nil {
		longtailOpts = append(longtailOpts, longtail.WithMetricsSource(config.Metrics))
	}
	longtailService := longtail.NewService(deps, config.Suggestions, longtailOpts...)

	trendsService := collect.NewTrendsService(deps, config.Trends,
		collect.WithGeo(config.Geo),
		collect.WithCacheTTL(config.TrendsCacheTTL),
		collect.WithTrendsStore(config.Store),
	)

	pool := workers.NewLongtailWorker(longtailService, config.WorkerConfig)
	if err := pool.Start(); err != nil {
		return nil, wrapError(err)
	}

	return &Client{
		longtail: longtailService,
		trends:   trendsService,
		pool:     pool,
	}, nil
}

// buildSources fills in sources that were not overridden
func buildSources(config *Config) error {
	if config.Suggestions == nil {
		config.Suggestions = naver.NewAutocompleteClient(config.HTTPClient)
	}

	if config.Metrics == nil && config.Naver.APIKey != "" {
		ads, err := naver.NewAdsClient(config.HTTPClient, naver.AdsCredentials{
			APIKey:     config.Naver.APIKey,
			SecretKey:  config.Naver.SecretKey,
			CustomerID: config.Naver.CustomerID,
		})
		if err != nil {
			return wrapError(err)
		}
		config.Metrics = ads
	}

	if config.Trends == nil {
		if config.SerpAPIKey != "" {
			serp, err := serpapi.NewTrendsClient(config.HTTPClient, config.SerpAPIKey, serpapi.DefaultBreakerSettings(),
				serpapi.WithGeo(config.Geo),
				serpapi.WithLogger(config.Logger),
			)
			if err != nil {
				return wrapError(err)
			}
			config.Trends = serp
		} else {
			config.Trends = googlerss.NewFeedClient(config.HTTPClient, googlerss.WithGeo(config.Geo))
		}
	}
	return nil
}

// Close stops the batch worker pool
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.pool.Stop()
}

func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// GenerateLongtails expands one seed keyword into long-tail candidates.
// Live suggestions are used when available; otherwise suffix patterns are applied.
func (c *Client) GenerateLongtails(ctx context.Context, seed string, opts ...GenerateOption) (*LongtailResult, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	result, err := c.longtail.GenerateLongtails(ctx, seed, opts...)
	if err != nil {
		return nil, wrapError(err)
	}
	return longtailResultFromDomain(result), nil
}

// GenerateBatch expands several seeds on the worker pool. Items are
// returned in seed order; a failed seed carries its error in BatchItem.Err.
func (c *Client) GenerateBatch(ctx context.Context, seeds []string, opts ...GenerateOption) ([]BatchItem, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, NewError(ErrorTypeValidation, "at least one seed is required")
	}

	outcomes, err := c.pool.GenerateBatch(ctx, seeds, opts...)
	if err != nil {
		return nil, wrapError(err)
	}

	items := make([]BatchItem, 0, len(outcomes))
	for _, out := range outcomes {
		item := BatchItem{Seed: out.Seed}
		if out.Err != nil {
			item.Err = wrapError(out.Err)
		} else if out.Result != nil {
			item.Result = longtailResultFromDomain(out.Result)
		}
		items = append(items, item)
	}
	return items, nil
}

// DailyTrends returns today's trending searches as scored keywords
func (c *Client) DailyTrends(ctx context.Context, forceRefresh bool) (*Trends, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	result, err := c.trends.DailyTrends(ctx, forceRefresh)
	if err != nil {
		return nil, wrapError(err)
	}
	return trendsFromDomain(result), nil
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.HTTPClient == nil {
		return NewError(ErrorTypeConfiguration, "HTTP client is required")
	}

	if config.Logger == nil {
		return NewError(ErrorTypeConfiguration, "logger is required")
	}

	if config.Store == nil {
		return NewError(ErrorTypeConfiguration, "keyword store is required")
	}

	return nil
}
