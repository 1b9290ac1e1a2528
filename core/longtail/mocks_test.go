package longtail

import (
	"context"
	"sync"
	"time"

	"keywords-app-api/core/domain"
)

// mockSuggestionSource is a mock implementation of the SuggestionSource interface
type mockSuggestionSource struct {
	fetchFunc func(ctx context.Context, keyword string) ([]domain.Suggestion, error)
	calls     int
}

func (m *mockSuggestionSource) FetchSuggestions(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
	m.calls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, keyword)
	}
	return nil, nil
}

// mockMetricsSource is a mock implementation of the MetricsSource interface
type mockMetricsSource struct {
	fetchFunc func(ctx context.Context, keyword string) (*domain.KeywordMetrics, error)
	keywords  []string
}

func (m *mockMetricsSource) FetchKeywordMetrics(ctx context.Context, keyword string) (*domain.KeywordMetrics, error) {
	m.keywords = append(m.keywords, keyword)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, keyword)
	}
	return nil, nil
}

// mockStore is a mock implementation of the KeywordStore interface
type mockStore struct {
	upsertLongtailsFunc func(ctx context.Context, records []domain.LongtailRecord) error
	longtails           []domain.LongtailRecord
}

func (m *mockStore) UpsertKeywords(ctx context.Context, keywords []domain.Keyword) error {
	return nil
}

func (m *mockStore) UpsertLongtails(ctx context.Context, records []domain.LongtailRecord) error {
	m.longtails = append(m.longtails, records...)
	if m.upsertLongtailsFunc != nil {
		return m.upsertLongtailsFunc(ctx, records)
	}
	return nil
}

func (m *mockStore) ListKeywords(ctx context.Context, query domain.KeywordQuery) ([]domain.Keyword, error) {
	return nil, nil
}

func (m *mockStore) Stats(ctx context.Context) (*domain.CollectionStats, error) {
	return &domain.CollectionStats{}, nil
}

// mockLogger records log messages by level
type mockLogger struct {
	mu       sync.Mutex
	messages map[string][]string
}

func newMockLogger() *mockLogger {
	return &mockLogger{messages: make(map[string][]string)}
}

func (l *mockLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages[level] = append(l.messages[level], msg)
}

func (l *mockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg) }
func (l *mockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg) }
func (l *mockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg) }
func (l *mockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg) }

// mockRecorder counts metrics calls
type mockRecorder struct {
	upstream    map[string]int
	collections map[string]int
	enrichments map[string]int
	failures    map[string]int
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{
		upstream:    make(map[string]int),
		collections: make(map[string]int),
		enrichments: make(map[string]int),
		failures:    make(map[string]int),
	}
}

func (r *mockRecorder) ObserveUpstream(source, outcome string, d time.Duration) {
	r.upstream[source+":"+outcome]++
}

func (r *mockRecorder) SetConsecutiveFailures(source string, failures int) {
	r.failures[source] = failures
}

func (r *mockRecorder) IncCollection(origin string) { r.collections[origin]++ }
func (r *mockRecorder) IncEnrichment(outcome string) { r.enrichments[outcome]++ }
func (r *mockRecorder) SetBreakerState(string, string) {}

// recordingSleep captures requested delays without waiting
type recordingSleep struct {
	delays []time.Duration
	err    error
}

func (r *recordingSleep) Sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return r.err
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }
