package collect

import (
	"context"
	"time"

	"keywords-app-api/core/domain"
)

type mockMetricsSource struct {
	fetchFunc func(ctx context.Context, keyword string) (*domain.KeywordMetrics, error)
}

func (m *mockMetricsSource) FetchKeywordMetrics(ctx context.Context, keyword string) (*domain.KeywordMetrics, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, keyword)
	}
	return nil, nil
}

type mockInterestSource struct {
	interestFunc func(ctx context.Context, keyword string) ([]domain.InterestPoint, error)
	relatedFunc  func(ctx context.Context, keyword string) ([]domain.RelatedQuery, error)
}

func (m *mockInterestSource) InterestOverTime(ctx context.Context, keyword string) ([]domain.InterestPoint, error) {
	if m.interestFunc != nil {
		return m.interestFunc(ctx, keyword)
	}
	return nil, nil
}

func (m *mockInterestSource) RelatedQueries(ctx context.Context, keyword string) ([]domain.RelatedQuery, error) {
	if m.relatedFunc != nil {
		return m.relatedFunc(ctx, keyword)
	}
	return nil, nil
}

type mockTrendsSource struct {
	bulkFunc func(ctx context.Context) (*domain.TrendsSnapshot, error)
	calls    int
}

func (m *mockTrendsSource) BulkTrends(ctx context.Context) (*domain.TrendsSnapshot, error) {
	m.calls++
	if m.bulkFunc != nil {
		return m.bulkFunc(ctx)
	}
	return &domain.TrendsSnapshot{}, nil
}

type mockStore struct {
	upsertKeywordsFunc func(ctx context.Context, keywords []domain.Keyword) error
	statsFunc          func(ctx context.Context) (*domain.CollectionStats, error)
	keywords           []domain.Keyword
}

func (m *mockStore) UpsertKeywords(ctx context.Context, keywords []domain.Keyword) error {
	m.keywords = append(m.keywords, keywords...)
	if m.upsertKeywordsFunc != nil {
		return m.upsertKeywordsFunc(ctx, keywords)
	}
	return nil
}

func (m *mockStore) UpsertLongtails(ctx context.Context, records []domain.LongtailRecord) error {
	return nil
}

func (m *mockStore) ListKeywords(ctx context.Context, query domain.KeywordQuery) ([]domain.Keyword, error) {
	return nil, nil
}

func (m *mockStore) Stats(ctx context.Context) (*domain.CollectionStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return &domain.CollectionStats{}, nil
}

// mapCache is a simple in-memory Cache for tests
type mapCache struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := c.data[key]
	if !ok {
		return nil, context.DeadlineExceeded
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
