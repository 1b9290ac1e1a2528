// ABOUTME: Trends service ingests bulk trending searches with caching and a secondary feed
// ABOUTME: Normalizes trends into scored keywords and stores them

package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"keywords-app-api/core/domain"
	"keywords-app-api/core/errors"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/trends"
)

// DefaultTrendsCacheTTL is how long a bulk trends snapshot is reused
const DefaultTrendsCacheTTL = time.Hour

// TrendsService serves bulk daily trends and per-keyword insight
type TrendsService struct {
	deps      interfaces.Dependencies
	primary   interfaces.TrendsSource
	secondary interfaces.TrendsSource
	interest  interfaces.InterestSource
	store     interfaces.KeywordStore
	cacheTTL  time.Duration
	geo       string
	now       func() time.Time
}

// TrendsOption configures a TrendsService
type TrendsOption func(*TrendsService)

// WithSecondarySource is queried when the primary source is missing or fails
func WithSecondarySource(src interfaces.TrendsSource) TrendsOption {
	return func(s *TrendsService) { s.secondary = src }
}

// WithInterestSource enables per-keyword insight lookups
func WithInterestSource(src interfaces.InterestSource) TrendsOption {
	return func(s *TrendsService) { s.interest = src }
}

// WithTrendsStore persists normalized trend keywords
func WithTrendsStore(store interfaces.KeywordStore) TrendsOption {
	return func(s *TrendsService) { s.store = store }
}

// WithCacheTTL overrides the snapshot cache lifetime
func WithCacheTTL(ttl time.Duration) TrendsOption {
	return func(s *TrendsService) { s.cacheTTL = ttl }
}

// WithGeo sets the region used in cache keys
func WithGeo(geo string) TrendsOption {
	return func(s *TrendsService) { s.geo = geo }
}

// NewTrendsService creates a trends service. primary may be nil when its
// credentials are not configured.
func NewTrendsService(deps interfaces.Dependencies, primary interfaces.TrendsSource, opts ...TrendsOption) *TrendsService {
	s := &TrendsService{
		deps:     deps,
		primary:  primary,
		cacheTTL: DefaultTrendsCacheTTL,
		geo:      "KR",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DailyTrendsResult is a normalized bulk trends snapshot
type DailyTrendsResult struct {
	Snapshot *domain.TrendsSnapshot
	Keywords []domain.Keyword
	Cached   bool
}

// DailyTrends returns today's trending searches as scored keywords.
// A cached snapshot is reused unless forceRefresh is set.
func (s *TrendsService) DailyTrends(ctx context.Context, forceRefresh bool) (*DailyTrendsResult, error) {
	cacheKey := fmt.Sprintf("trends:daily:%s", s.geo)

	if !forceRefresh {
		if snapshot := s.cachedSnapshot(ctx, cacheKey); snapshot != nil {
			return &DailyTrendsResult{
				Snapshot: snapshot,
				Keywords: trends.Normalize(snapshot.Items, snapshot.FetchedAt),
				Cached:   true,
			}, nil
		}
	}

	snapshot, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = s.now()
	}

	if s.deps.Cache != nil && len(snapshot.Items) > 0 {
		if data, err := json.Marshal(snapshot); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	keywords := trends.Normalize(snapshot.Items, snapshot.FetchedAt)
	if s.store != nil && len(keywords) > 0 {
		if err := s.store.UpsertKeywords(ctx, keywords); err != nil {
			s.warn("Failed to store trend keywords", map[string]interface{}{
				"count": len(keywords),
				"error": err.Error(),
			})
		}
	}

	return &DailyTrendsResult{Snapshot: snapshot, Keywords: keywords}, nil
}

func (s *TrendsService) cachedSnapshot(ctx context.Context, key string) *domain.TrendsSnapshot {
	if s.deps.Cache == nil {
		return nil
	}
	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var snapshot domain.TrendsSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

func (s *TrendsService) fetchSnapshot(ctx context.Context) (*domain.TrendsSnapshot, error) {
	var primaryErr error
	if s.primary != nil {
		snapshot, err := s.primary.BulkTrends(ctx)
		if err == nil {
			return snapshot, nil
		}
		primaryErr = err
		s.warn("Primary trends source failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if s.secondary != nil {
		snapshot, err := s.secondary.BulkTrends(ctx)
		if err == nil {
			return snapshot, nil
		}
		s.warn("Secondary trends source failed", map[string]interface{}{
			"error": err.Error(),
		})
		if primaryErr == nil {
			primaryErr = err
		}
	}

	if primaryErr != nil {
		return nil, primaryErr
	}
	return nil, &errors.ConfigurationError{Component: "trends", Message: "no trends source configured"}
}

// KeywordInsight is interest and related queries for one keyword
type KeywordInsight struct {
	Keyword         string
	Interest        []domain.InterestPoint
	RelatedQueries  []domain.RelatedQuery
	InterestAverage float64
}

// Insight looks up interest over time and related queries. Upstream
// failures degrade to empty series.
func (s *TrendsService) Insight(ctx context.Context, keyword string) (*KeywordInsight, error) {
	if s.interest == nil {
		return nil, &errors.ConfigurationError{Component: "trends", Message: "interest source not configured"}
	}

	insight := &KeywordInsight{Keyword: keyword}

	points, err := s.interest.InterestOverTime(ctx, keyword)
	if err != nil {
		s.warn("Interest lookup failed", map[string]interface{}{"keyword": keyword, "error": err.Error()})
	} else {
		insight.Interest = points
	}

	related, err := s.interest.RelatedQueries(ctx, keyword)
	if err != nil {
		s.warn("Related queries lookup failed", map[string]interface{}{"keyword": keyword, "error": err.Error()})
	} else {
		insight.RelatedQueries = related
	}

	insight.InterestAverage = averageInterest(insight.Interest)
	return insight, nil
}

func averageInterest(points []domain.InterestPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	total := 0
	for _, p := range points {
		total += p.Value
	}
	return float64(total) / float64(len(points))
}

func (s *TrendsService) warn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}
