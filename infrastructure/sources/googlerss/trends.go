// ABOUTME: Google Trends daily RSS feed client
// ABOUTME: Secondary bulk trends source used when SerpAPI is unavailable

package googlerss

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"keywords-app-api/core/domain"
	"keywords-app-api/core/errors"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/infrastructure/sources/upstream"
	"keywords-app-api/pkg/utils/html"
	feedtime "keywords-app-api/pkg/utils/time"
)

const (
	// SourceName identifies this upstream in errors and snapshots
	SourceName = "google-rss"

	DefaultFeedURL = "https://trends.google.com/trending/rss"
	exploreURL     = "https://trends.google.com/trends/explore"

	// maxRelatedHeadlines bounds how many news headlines are kept per trend
	maxRelatedHeadlines = 3
)

// FeedClient implements TrendsSource over the public RSS feed
type FeedClient struct {
	http    interfaces.HTTPClient
	feedURL string
	geo     string
	now     func() time.Time
	metrics interfaces.MetricsRecorder
}

// Option configures a FeedClient
type Option func(*FeedClient)

// WithFeedURL overrides the feed endpoint
func WithFeedURL(u string) Option {
	return func(c *FeedClient) { c.feedURL = u }
}

// WithGeo sets the feed region
func WithGeo(geo string) Option {
	return func(c *FeedClient) {
		if geo != "" {
			c.geo = geo
		}
	}
}

// WithClock sets the fallback snapshot timestamp source
func WithClock(now func() time.Time) Option {
	return func(c *FeedClient) { c.now = now }
}

// WithMetrics records upstream call outcomes
func WithMetrics(m interfaces.MetricsRecorder) Option {
	return func(c *FeedClient) { c.metrics = m }
}

// NewFeedClient creates a feed client. The feed needs no credentials.
func NewFeedClient(httpClient interfaces.HTTPClient, opts ...Option) *FeedClient {
	c := &FeedClient{
		http:    httpClient,
		feedURL: DefaultFeedURL,
		geo:     "KR",
		now:     time.Now,
		metrics: interfaces.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BulkTrends fetches and parses the current feed
func (c *FeedClient) BulkTrends(ctx context.Context) (*domain.TrendsSnapshot, error) {
	start := time.Now()
	snapshot, err := c.fetch(ctx)

	outcome := "success"
	switch {
	case err == nil:
	case errors.IsUpstream(err):
		outcome = "failure"
	default:
		outcome = "canceled"
	}
	c.metrics.ObserveUpstream(SourceName, outcome, time.Since(start))
	return snapshot, err
}

func (c *FeedClient) fetch(ctx context.Context) (*domain.TrendsSnapshot, error) {
	params := url.Values{}
	params.Set("geo", c.geo)

	body, err := upstream.ReadBody(ctx, c.http, SourceName, c.feedURL+"?"+params.Encode(), map[string]string{
		"Accept": "application/rss+xml, application/xml",
	})
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, &errors.UpstreamError{Source: SourceName, Message: "malformed feed", Err: err}
	}

	snapshot := &domain.TrendsSnapshot{
		Source: SourceName,
		Geo:    c.geo,
		Items:  make([]domain.TrendItem, 0, len(feed.Items)),
	}

	var latest time.Time
	for _, item := range feed.Items {
		trend, published := c.toTrendItem(item)
		if trend.Query == "" {
			continue
		}
		if published.After(latest) {
			latest = published
		}
		snapshot.Items = append(snapshot.Items, trend)
	}

	snapshot.FetchedAt = latest
	if latest.IsZero() {
		snapshot.FetchedAt = c.now()
	}
	return snapshot, nil
}

func (c *FeedClient) toTrendItem(item *gofeed.Item) (domain.TrendItem, time.Time) {
	query := html.StripHTML(item.Title)
	trend := domain.TrendItem{Query: query}
	if query == "" {
		return trend, time.Time{}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("geo", c.geo)
	trend.ExploreLink = exploreURL + "?" + params.Encode()

	if traffic := extensionValue(item, "approx_traffic"); traffic != "" {
		trend.Traffic = domain.TrafficFromText(traffic)
	}

	for _, news := range item.Extensions["ht"]["news_item"] {
		titles := news.Children["news_item_title"]
		if len(titles) == 0 {
			continue
		}
		if headline := html.StripHTML(titles[0].Value); headline != "" {
			trend.RelatedQueries = append(trend.RelatedQueries, headline)
		}
		if len(trend.RelatedQueries) == maxRelatedHeadlines {
			break
		}
	}

	published := time.Time{}
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else {
		published = feedtime.ParseFlexibleTime(item.Published)
	}
	return trend, published
}

func extensionValue(item *gofeed.Item, name string) string {
	if item.Extensions == nil {
		return ""
	}
	values := item.Extensions["ht"][name]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}
