// ABOUTME: SerpAPI Google Trends client for bulk trending searches and keyword interest
// ABOUTME: Bulk trend fetches run behind a gobreaker circuit breaker

package serpapi

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"keywords-app-api/core/domain"
	coreerrors "keywords-app-api/core/errors"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/infrastructure/sources/upstream"
)

const (
	// SourceName identifies this upstream in errors, metrics and snapshots
	SourceName = "serpapi"

	DefaultBaseURL = "https://serpapi.com/search.json"
	DefaultGeo     = "KR"

	trendingEngine = "google_trends_trending_now"
	trendsEngine   = "google_trends"
)

// TrendsClient implements TrendsSource and InterestSource
type TrendsClient struct {
	http    interfaces.HTTPClient
	apiKey  string
	baseURL string
	geo     string
	now     func() time.Time
	metrics interfaces.MetricsRecorder
	logger  interfaces.Logger
	cb      *gobreaker.CircuitBreaker[*domain.TrendsSnapshot]
}

// Option configures a TrendsClient
type Option func(*TrendsClient)

// WithBaseURL overrides the SerpAPI endpoint
func WithBaseURL(u string) Option {
	return func(c *TrendsClient) { c.baseURL = u }
}

// WithGeo sets the trends region
func WithGeo(geo string) Option {
	return func(c *TrendsClient) {
		if geo != "" {
			c.geo = geo
		}
	}
}

// WithClock sets the time source for snapshot timestamps
func WithClock(now func() time.Time) Option {
	return func(c *TrendsClient) { c.now = now }
}

// WithMetrics publishes call outcomes and breaker state
func WithMetrics(m interfaces.MetricsRecorder) Option {
	return func(c *TrendsClient) { c.metrics = m }
}

// WithLogger logs breaker transitions
func WithLogger(l interfaces.Logger) Option {
	return func(c *TrendsClient) { c.logger = l }
}

// BreakerSettings tunes the bulk trends circuit breaker
type BreakerSettings struct {
	MaxFailures uint32
	Interval    time.Duration
	Timeout     time.Duration
}

// DefaultBreakerSettings opens after 5 consecutive failures and probes again after 2 minutes
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{MaxFailures: 5, Interval: time.Minute, Timeout: 2 * time.Minute}
}

// NewTrendsClient returns a ConfigurationError when apiKey is empty
func NewTrendsClient(httpClient interfaces.HTTPClient, apiKey string, breaker BreakerSettings, opts ...Option) (*TrendsClient, error) {
	if apiKey == "" {
		return nil, &coreerrors.ConfigurationError{Component: SourceName, Message: "SERPAPI_KEY is not set"}
	}

	c := &TrendsClient{
		http:    httpClient,
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		geo:     DefaultGeo,
		now:     time.Now,
		metrics: interfaces.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if breaker.MaxFailures == 0 {
		breaker.MaxFailures = DefaultBreakerSettings().MaxFailures
	}
	name := SourceName + "-trending"
	c.metrics.SetBreakerState(name, stateToString(gobreaker.StateClosed))

	c.cb = gobreaker.NewCircuitBreaker[*domain.TrendsSnapshot](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    breaker.Interval,
		Timeout:     breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breaker.MaxFailures
		},
		// caller cancellation says nothing about upstream health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.metrics.SetBreakerState(name, stateToString(to))
			if c.logger != nil {
				c.logger.Warn("Circuit breaker state transition", map[string]interface{}{
					"breaker": name,
					"from":    stateToString(from),
					"to":      stateToString(to),
				})
			}
		},
	})

	return c, nil
}

// BreakerState returns the bulk trends breaker state
func (c *TrendsClient) BreakerState() string {
	return stateToString(c.cb.State())
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func (c *TrendsClient) get(ctx context.Context, params url.Values, dest interface{}) error {
	params.Set("api_key", c.apiKey)
	params.Set("geo", c.geo)

	start := time.Now()
	err := upstream.GetJSON(ctx, c.http, SourceName, c.baseURL+"?"+params.Encode(), nil, dest)
	outcome := "success"
	switch {
	case err == nil:
	case coreerrors.IsUpstream(err):
		outcome = "failure"
	default:
		outcome = "canceled"
	}
	c.metrics.ObserveUpstream(SourceName, outcome, time.Since(start))
	return err
}

type trendingResponse struct {
	Error            string          `json:"error"`
	TrendingSearches []trendingEntry `json:"trending_searches"`
	DailySearches    []trendingEntry `json:"daily_searches"`
}

type trendingEntry struct {
	Query          string         `json:"query"`
	Search         string         `json:"search"`
	Traffic        domain.Traffic `json:"traffic"`
	SearchVolume   domain.Traffic `json:"search_volume"`
	ExploreLink    string         `json:"explore_link"`
	SerpAPILink    string         `json:"serpapi_link"`
	RelatedQueries []interface{}  `json:"related_queries"`
	TrendBreakdown []interface{}  `json:"trend_breakdown"`
}

func (e trendingEntry) toItem() domain.TrendItem {
	item := domain.TrendItem{
		Query:       strings.TrimSpace(e.Query),
		Traffic:     e.Traffic,
		ExploreLink: e.ExploreLink,
		SerpAPILink: e.SerpAPILink,
	}
	if item.Query == "" {
		item.Query = strings.TrimSpace(e.Search)
	}
	if !item.Traffic.Provided {
		item.Traffic = e.SearchVolume
	}

	related := e.RelatedQueries
	if len(related) == 0 {
		related = e.TrendBreakdown
	}
	for _, r := range related {
		if q := relatedText(r); q != "" {
			item.RelatedQueries = append(item.RelatedQueries, q)
		}
	}
	return item
}

// relatedText accepts plain strings or objects with a query field
func relatedText(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]interface{}:
		if q, ok := val["query"].(string); ok {
			return strings.TrimSpace(q)
		}
	}
	return ""
}

// BulkTrends fetches the current trending searches for the configured region
func (c *TrendsClient) BulkTrends(ctx context.Context) (*domain.TrendsSnapshot, error) {
	snapshot, err := c.cb.Execute(func() (*domain.TrendsSnapshot, error) {
		return c.fetchTrending(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.metrics.ObserveUpstream(SourceName, "rejected", 0)
		return nil, &coreerrors.UpstreamError{Source: SourceName, Message: "circuit breaker open", Err: err}
	}
	return snapshot, err
}

func (c *TrendsClient) fetchTrending(ctx context.Context) (*domain.TrendsSnapshot, error) {
	params := url.Values{}
	params.Set("engine", trendingEngine)

	var out trendingResponse
	if err := c.get(ctx, params, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, &coreerrors.UpstreamError{Source: SourceName, Message: out.Error}
	}

	entries := out.TrendingSearches
	if len(entries) == 0 {
		entries = out.DailySearches
	}

	items := make([]domain.TrendItem, 0, len(entries))
	for _, e := range entries {
		item := e.toItem()
		if item.Query == "" {
			continue
		}
		items = append(items, item)
	}

	return &domain.TrendsSnapshot{
		Source:    SourceName,
		Geo:       c.geo,
		Items:     items,
		FetchedAt: c.now(),
	}, nil
}

type timeseriesResponse struct {
	Error            string `json:"error"`
	InterestOverTime struct {
		TimelineData []struct {
			Date   string `json:"date"`
			Values []struct {
				Query          string `json:"query"`
				ExtractedValue int    `json:"extracted_value"`
			} `json:"values"`
		} `json:"timeline_data"`
	} `json:"interest_over_time"`
}

// InterestOverTime returns the past week of interest samples for keyword
func (c *TrendsClient) InterestOverTime(ctx context.Context, keyword string) ([]domain.InterestPoint, error) {
	params := url.Values{}
	params.Set("engine", trendsEngine)
	params.Set("q", keyword)
	params.Set("data_type", "TIMESERIES")
	params.Set("date", "now 7-d")

	var out timeseriesResponse
	if err := c.get(ctx, params, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, &coreerrors.UpstreamError{Source: SourceName, Message: out.Error}
	}

	points := make([]domain.InterestPoint, 0, len(out.InterestOverTime.TimelineData))
	for _, row := range out.InterestOverTime.TimelineData {
		p := domain.InterestPoint{Date: row.Date}
		if len(row.Values) > 0 {
			p.Value = row.Values[0].ExtractedValue
		}
		points = append(points, p)
	}
	return points, nil
}

type relatedResponse struct {
	Error          string `json:"error"`
	RelatedQueries struct {
		Top []struct {
			Query          string `json:"query"`
			ExtractedValue int    `json:"extracted_value"`
			Link           string `json:"link"`
		} `json:"top"`
	} `json:"related_queries"`
}

// RelatedQueries returns the top related queries for keyword
func (c *TrendsClient) RelatedQueries(ctx context.Context, keyword string) ([]domain.RelatedQuery, error) {
	params := url.Values{}
	params.Set("engine", trendsEngine)
	params.Set("q", keyword)
	params.Set("data_type", "RELATED_QUERIES")

	var out relatedResponse
	if err := c.get(ctx, params, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, &coreerrors.UpstreamError{Source: SourceName, Message: out.Error}
	}

	related := make([]domain.RelatedQuery, 0, len(out.RelatedQueries.Top))
	for _, r := range out.RelatedQueries.Top {
		if r.Query == "" {
			continue
		}
		related = append(related, domain.RelatedQuery{Query: r.Query, Value: r.ExtractedValue, Link: r.Link})
	}
	return related, nil
}
