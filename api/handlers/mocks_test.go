package handlers

import (
	"context"
	"time"

	"keywords-app-api/core/collect"
	"keywords-app-api/core/config"
	"keywords-app-api/core/domain"
	"keywords-app-api/core/keywords"
	"keywords-app-api/core/workers"
)

type mockGenerator struct {
	generateFunc func(ctx context.Context, seed string, cfg config.GenerateConfig) (*domain.CollectionResult, error)
}

func (m *mockGenerator) GenerateLongtails(ctx context.Context, seed string, opts ...config.GenerateOption) (*domain.CollectionResult, error) {
	return m.generateFunc(ctx, seed, config.NewGenerateConfig(opts...))
}

type mockBatch struct {
	batchFunc func(ctx context.Context, seeds []string) ([]workers.LongtailOutcome, error)
}

func (m *mockBatch) GenerateBatch(ctx context.Context, seeds []string, opts ...config.GenerateOption) ([]workers.LongtailOutcome, error) {
	return m.batchFunc(ctx, seeds)
}

type mockMetricsSource struct {
	fetchFunc func(ctx context.Context, keyword string) (*domain.KeywordMetrics, error)
}

func (m *mockMetricsSource) FetchKeywordMetrics(ctx context.Context, keyword string) (*domain.KeywordMetrics, error) {
	return m.fetchFunc(ctx, keyword)
}

type mockRelatedSource struct {
	relatedFunc func(ctx context.Context, keyword string, limit int) ([]domain.KeywordMetrics, error)
}

func (m *mockRelatedSource) FetchRelatedKeywords(ctx context.Context, keyword string, limit int) ([]domain.KeywordMetrics, error) {
	return m.relatedFunc(ctx, keyword, limit)
}

type mockTrendsService struct {
	dailyFunc   func(ctx context.Context, forceRefresh bool) (*collect.DailyTrendsResult, error)
	insightFunc func(ctx context.Context, keyword string) (*collect.KeywordInsight, error)
}

func (m *mockTrendsService) DailyTrends(ctx context.Context, forceRefresh bool) (*collect.DailyTrendsResult, error) {
	return m.dailyFunc(ctx, forceRefresh)
}

func (m *mockTrendsService) Insight(ctx context.Context, keyword string) (*collect.KeywordInsight, error) {
	return m.insightFunc(ctx, keyword)
}

type mockCollector struct {
	collectFunc func(ctx context.Context, seeds []string) (*collect.Report, error)
	statusFunc  func(ctx context.Context, sources map[string]bool) (*collect.Status, error)
}

func (m *mockCollector) CollectAll(ctx context.Context, seeds []string) (*collect.Report, error) {
	return m.collectFunc(ctx, seeds)
}

func (m *mockCollector) Status(ctx context.Context, sources map[string]bool) (*collect.Status, error) {
	return m.statusFunc(ctx, sources)
}

type mockLister struct {
	listFunc func(ctx context.Context, q domain.KeywordQuery) ([]keywords.RankedKeyword, domain.KeywordQuery, error)
}

func (m *mockLister) List(ctx context.Context, q domain.KeywordQuery) ([]keywords.RankedKeyword, domain.KeywordQuery, error) {
	return m.listFunc(ctx, q)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.err }

var collectedAt = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
