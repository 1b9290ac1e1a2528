package longtail

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"keywords-app-api/core/backoff"
	"keywords-app-api/core/config"
	"keywords-app-api/core/domain"
	coreerrors "keywords-app-api/core/errors"
	"keywords-app-api/core/interfaces"
)

func suggestionsOf(texts ...string) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(texts))
	for i, text := range texts {
		out = append(out, domain.Suggestion{Text: text, Origin: domain.OriginAutocomplete, Rank: i + 1})
	}
	return out
}

func TestGenerateLongtails_ValidatesSeed(t *testing.T) {
	source := &mockSuggestionSource{}
	service := NewService(interfaces.Dependencies{}, source)

	for _, seed := range []string{"", "   ", strings.Repeat("가", 101)} {
		_, err := service.GenerateLongtails(context.Background(), seed)
		if !coreerrors.IsValidation(err) {
			t.Errorf("seed %q: expected ValidationError, got %v", seed, err)
		}
	}

	if source.calls != 0 {
		t.Error("invalid seeds must not reach the suggestion source")
	}

	if _, err := service.GenerateLongtails(context.Background(), strings.Repeat("가", 100)); err != nil {
		t.Errorf("100 character seed should be accepted, got %v", err)
	}
}

func TestGenerateLongtails_LiveResult(t *testing.T) {
	source := &mockSuggestionSource{
		fetchFunc: func(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
			if keyword != "캠핑" {
				t.Errorf("expected trimmed seed, got %q", keyword)
			}
			return []domain.Suggestion{
				{Text: "캠핑 의자", Origin: domain.OriginAutocomplete, Rank: 1},
				{Text: "캠핑 텐트", Origin: domain.OriginAutocomplete, Rank: 2},
				{Text: "캠핑장 추천", Origin: domain.OriginRelated, Rank: 1},
			}, nil
		},
	}
	service := NewService(interfaces.Dependencies{}, source)

	result, err := service.GenerateLongtails(context.Background(), "  캠핑 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Origin != domain.ResultLiveAPI {
		t.Errorf("expected api origin, got %s", result.Origin)
	}
	if result.SeedKeyword != "캠핑" {
		t.Errorf("expected trimmed seed, got %q", result.SeedKeyword)
	}
	if len(result.Candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(result.Candidates))
	}
	if result.Candidates[2].Origin != domain.OriginRelated || result.Candidates[2].Order != 1 {
		t.Errorf("unexpected related candidate: %+v", result.Candidates[2])
	}
	for _, c := range result.Candidates {
		if c.Enrichment != nil {
			t.Error("candidates should not be enriched unless requested")
		}
	}
}

func TestGenerateLongtails_DedupKeepsFirstSeen(t *testing.T) {
	source := &mockSuggestionSource{
		fetchFunc: func(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
			return suggestionsOf("SEO", "seo", " SEO  optimization", "seo optimization"), nil
		},
	}
	service := NewService(interfaces.Dependencies{}, source)

	result, err := service.GenerateLongtails(context.Background(), "seo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var texts []string
	for _, c := range result.Candidates {
		texts = append(texts, c.Text)
	}
	expected := []string{"SEO", " SEO  optimization"}
	if !reflect.DeepEqual(texts, expected) {
		t.Errorf("expected %q, got %q", expected, texts)
	}
}

func TestGenerateLongtails_CapsAtTwenty(t *testing.T) {
	source := &mockSuggestionSource{
		fetchFunc: func(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
			var texts []string
			for i := 0; i < 30; i++ {
				texts = append(texts, fmt.Sprintf("blog idea %d", i))
			}
			return suggestionsOf(texts...), nil
		},
	}
	service := NewService(interfaces.Dependencies{}, source)

	result, _ := service.GenerateLongtails(context.Background(), "blog")

	if len(result.Candidates) != 20 {
		t.Errorf("expected 20 candidates, got %d", len(result.Candidates))
	}
	if result.Candidates[19].Text != "blog idea 19" {
		t.Errorf("expected discovery order, got %q", result.Candidates[19].Text)
	}
}

func TestGenerateLongtails_FailureFallsBack(t *testing.T) {
	recorder := newMockRecorder()
	logger := newMockLogger()
	source := &mockSuggestionSource{
		fetchFunc: func(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
			return nil, &coreerrors.UpstreamError{Source: "naver-autocomplete", StatusCode: 500, Message: "boom"}
		},
	}
	service := NewService(interfaces.Dependencies{Logger: logger, Metrics: recorder}, source)

	result, err := service.GenerateLongtails(context.Background(), "blog")
	if err != nil {
		t.Fatalf("upstream failure must not surface, got %v", err)
	}

	if result.Origin != domain.ResultFallback {
		t.Errorf("expected fallback origin, got %s", result.Origin)
	}
	expected := []string{"blog 추천", "blog 후기", "blog 가격"}
	for i, c := range result.Candidates {
		if c.Text != expected[i] || c.Origin != domain.OriginPattern || c.Order != i+1 {
			t.Errorf("candidate %d: unexpected %+v", i, c)
		}
	}
	if got := service.Gate().State(SuggestionSourceKey).ConsecutiveFailures; got != 1 {
		t.Errorf("expected 1 recorded failure, got %d", got)
	}
	if recorder.upstream[SuggestionSourceKey+":failure"] != 1 {
		t.Error("expected failure to be recorded in metrics")
	}
	if recorder.collections["fallback"] != 1 {
		t.Error("expected fallback collection to be counted")
	}
	if len(logger.messages["warn"]) == 0 {
		t.Error("expected a warning to be logged")
	}
}

func TestGenerateLongtails_EmptyResponseFallsBackAndResetsGate(t *testing.T) {
	gate := backoff.NewGate()
	gate.RecordFailure(SuggestionSourceKey)
	source := &mockSuggestionSource{
		fetchFunc: func(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
			return []domain.Suggestion{{Text: "  "}}, nil
		},
	}
	service := NewService(interfaces.Dependencies{}, source, WithGate(gate))

	result, _ := service.GenerateLongtails(context.Background(), "blog")

	if result.Origin != domain.ResultFallback {
		t.Errorf("expected fallback origin, got %s", result.Origin)
	}
	if gate.State(SuggestionSourceKey).ConsecutiveFailures != 0 {
		t.Error("a well-formed empty response counts as success")
	}
}

func TestGenerateLongtails_GatedSourceUsesFallback(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	gate := backoff.NewGate(backoff.WithClock(clock.Now))
	for i := 0; i < 3; i++ {
		gate.RecordFailure(SuggestionSourceKey)
	}
	clock.now = clock.now.Add(1500 * time.Millisecond)

	source := &mockSuggestionSource{
		fetchFunc: func(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
			return suggestionsOf("blog tips"), nil
		},
	}
	metrics := &mockMetricsSource{
		fetchFunc: func(ctx context.Context, keyword string) (*domain.KeywordMetrics, error) {
			return &domain.KeywordMetrics{Keyword: keyword, VolumePC: 100, Competition: domain.CompetitionLow}, nil
		},
	}
	service := NewService(interfaces.Dependencies{}, source, WithGate(gate), WithMetricsSource(metrics))

	result, err := service.GenerateLongtails(context.Background(), "blog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if source.calls != 0 {
		t.Error("gated source must not be called")
	}
	if result.Origin != domain.ResultFallback {
		t.Errorf("expected fallback origin, got %s", result.Origin)
	}
	if len(result.Candidates) != 3 {
		t.Errorf("expected exactly 3 fallback candidates, got %d", len(result.Candidates))
	}
	if gate.State(SuggestionSourceKey).ConsecutiveFailures != 3 {
		t.Error("a skipped call must not change the failure count")
	}
}

func TestGenerateLongtails_EnrichmentLimitsAndDelays(t *testing.T) {
	source := &mockSuggestionSource{
		fetchFunc: func(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
			var texts []string
			for i := 0; i < 12; i++ {
				texts = append(texts, fmt.Sprintf("kw %d", i))
			}
			return suggestionsOf(texts...), nil
		},
	}
	metrics := &mockMetricsSource{
		fetchFunc: func(ctx context.Context, keyword string) (*domain.KeywordMetrics, error) {
			switch keyword {
			case "kw 1":
				return nil, &coreerrors.UpstreamError{Source: "naver-ads", StatusCode: 500}
			case "kw 2":
				return nil, nil
			}
			return &domain.KeywordMetrics{
				Keyword:      keyword,
				VolumePC:     30,
				VolumeMobile: 20,
				Competition:  domain.CompetitionLow,
				AvgCPC:       120,
			}, nil
		},
	}
	sleeper := &recordingSleep{}
	recorder := newMockRecorder()
	service := NewService(interfaces.Dependencies{Metrics: recorder}, source,
		WithMetricsSource(metrics),
		WithSleep(sleeper.Sleep),
	)

	result, err := service.GenerateLongtails(context.Background(), "kw", config.WithVolumeEnrichment(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(metrics.keywords) != 10 {
		t.Errorf("expected 10 metrics lookups, got %d", len(metrics.keywords))
	}
	if len(sleeper.delays) != 9 {
		t.Errorf("expected 9 delays between 10 calls, got %d", len(sleeper.delays))
	}
	for _, d := range sleeper.delays {
		if d != 200*time.Millisecond {
			t.Errorf("expected 200ms delay, got %v", d)
		}
	}

	first := result.Candidates[0].Enrichment
	if first == nil || first.SearchVolume != 50 || first.Score != 75 || first.CostPerClick != 120 {
		t.Errorf("unexpected enrichment: %+v", first)
	}
	if result.Candidates[1].Enrichment != nil {
		t.Error("failed lookup should leave the candidate unenriched")
	}
	if result.Candidates[2].Enrichment != nil {
		t.Error("missing metrics should leave the candidate unenriched")
	}
	for _, c := range result.Candidates[10:] {
		if c.Enrichment != nil {
			t.Errorf("candidate %q beyond the limit should be unenriched", c.Text)
		}
	}
	if recorder.enrichments["success"] != 8 || recorder.enrichments["failure"] != 1 || recorder.enrichments["miss"] != 1 {
		t.Errorf("unexpected enrichment counts: %v", recorder.enrichments)
	}
}

func TestGenerateLongtails_CancelledDuringEnrichment(t *testing.T) {
	source := &mockSuggestionSource{
		fetchFunc: func(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
			return suggestionsOf("a", "b", "c"), nil
		},
	}
	metrics := &mockMetricsSource{
		fetchFunc: func(ctx context.Context, keyword string) (*domain.KeywordMetrics, error) {
			return &domain.KeywordMetrics{Keyword: keyword, Competition: domain.CompetitionHigh}, nil
		},
	}
	sleeper := &recordingSleep{err: context.Canceled}
	service := NewService(interfaces.Dependencies{}, source, WithMetricsSource(metrics), WithSleep(sleeper.Sleep))

	result, err := service.GenerateLongtails(context.Background(), "x", config.WithVolumeEnrichment(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(metrics.keywords) != 1 {
		t.Errorf("expected enrichment to stop after the first call, got %d calls", len(metrics.keywords))
	}
	if len(result.Candidates) != 3 || result.Candidates[0].Enrichment == nil || result.Candidates[1].Enrichment != nil {
		t.Errorf("expected partial enrichment, got %+v", result.Candidates)
	}
}

func TestGenerateLongtails_CallerCancellationDoesNotCountAsFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &mockSuggestionSource{
		fetchFunc: func(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
			cancel()
			return nil, ctx.Err()
		},
	}
	service := NewService(interfaces.Dependencies{}, source)

	result, err := service.GenerateLongtails(ctx, "blog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Origin != domain.ResultFallback {
		t.Errorf("expected fallback origin, got %s", result.Origin)
	}
	if service.Gate().State(SuggestionSourceKey).ConsecutiveFailures != 0 {
		t.Error("cancellation should not be charged to the source")
	}
}

func TestGenerateLongtails_PersistsCandidates(t *testing.T) {
	store := &mockStore{}
	source := &mockSuggestionSource{
		fetchFunc: func(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
			return suggestionsOf("blog tips", "blog seo"), nil
		},
	}
	service := NewService(interfaces.Dependencies{}, source, WithStore(store))

	if _, err := service.GenerateLongtails(context.Background(), "blog"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.longtails) != 2 {
		t.Fatalf("expected 2 persisted records, got %d", len(store.longtails))
	}
	if store.longtails[0].SeedKeyword != "blog" || store.longtails[0].Origin != domain.ResultLiveAPI {
		t.Errorf("unexpected record: %+v", store.longtails[0])
	}
}

func TestGenerateLongtails_StoreFailureIsLogged(t *testing.T) {
	logger := newMockLogger()
	store := &mockStore{
		upsertLongtailsFunc: func(ctx context.Context, records []domain.LongtailRecord) error {
			return errors.New("disk full")
		},
	}
	service := NewService(interfaces.Dependencies{Logger: logger}, nil, WithStore(store))

	result, err := service.GenerateLongtails(context.Background(), "blog")
	if err != nil {
		t.Fatalf("store failures must not surface, got %v", err)
	}
	if result.Origin != domain.ResultFallback {
		t.Errorf("missing suggestion source should fall back, got %s", result.Origin)
	}
	if len(logger.messages["warn"]) != 1 {
		t.Errorf("expected one warning, got %v", logger.messages["warn"])
	}
}

func TestSleep_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if err := Sleep(context.Background(), 0); err != nil {
		t.Errorf("zero sleep should succeed, got %v", err)
	}
}
