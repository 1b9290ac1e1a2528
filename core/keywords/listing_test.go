package keywords

import (
	"context"
	"testing"
	"time"

	"keywords-app-api/core/domain"
	"keywords-app-api/core/errors"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/scoring"
)

func sampleKeywords() []domain.Keyword {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Keyword{
		{Text: "b", Score: 80, SearchVolume: 100, CostPerClick: 50, Competition: domain.CompetitionLow, Platform: domain.PlatformNaver, CollectedAt: base},
		{Text: "a", Score: 80, SearchVolume: 100, CostPerClick: 900, Competition: domain.CompetitionHigh, Platform: domain.PlatformNaver, CollectedAt: base.Add(time.Hour)},
		{Text: "c", Score: 90, SearchVolume: 10, CostPerClick: 0, Competition: domain.CompetitionLow, Platform: domain.PlatformGoogle, CollectedAt: base.Add(2 * time.Hour)},
		{Text: "d", Score: 40, SearchVolume: 5000, CostPerClick: 300, Competition: domain.CompetitionMedium, Platform: domain.PlatformGoogle, CollectedAt: base.Add(-time.Hour)},
	}
}

func texts(items []domain.Keyword) string {
	out := ""
	for _, k := range items {
		out += k.Text
	}
	return out
}

func TestNormalizeQuery_Defaults(t *testing.T) {
	q, err := NormalizeQuery(domain.KeywordQuery{Limit: 1000, Offset: -3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Filter != domain.FilterAll || q.Sort != domain.SortScore {
		t.Errorf("unexpected defaults: %+v", q)
	}
	if q.Limit != MaxLimit || q.Offset != 0 {
		t.Errorf("expected clamped limit and offset, got %+v", q)
	}

	q, _ = NormalizeQuery(domain.KeywordQuery{})
	if q.Limit != DefaultLimit {
		t.Errorf("expected default limit, got %d", q.Limit)
	}
}

func TestNormalizeQuery_RejectsUnknownValues(t *testing.T) {
	cases := []domain.KeywordQuery{
		{Filter: "everything"},
		{Sort: "alphabetical"},
		{Platform: "bing"},
	}
	for _, q := range cases {
		if _, err := NormalizeQuery(q); !errors.IsValidation(err) {
			t.Errorf("query %+v: expected ValidationError, got %v", q, err)
		}
	}
}

func TestSortKeywords(t *testing.T) {
	tests := []struct {
		sort     domain.KeywordSort
		expected string
	}{
		{domain.SortScore, "cabd"},
		{domain.SortVolume, "dabc"},
		{domain.SortCPC, "adbc"},
		{domain.SortRecent, "cabd"},
	}

	for _, tt := range tests {
		items := sampleKeywords()
		SortKeywords(items, tt.sort)
		if got := texts(items); got != tt.expected {
			t.Errorf("sort %s: got %s, want %s", tt.sort, got, tt.expected)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := sampleKeywords()

	if got := Paginate(items, 1, 2); texts(got) != "ac" {
		t.Errorf("unexpected page: %s", texts(got))
	}
	if got := Paginate(items, 10, 2); len(got) != 0 {
		t.Errorf("offset past end should be empty, got %d", len(got))
	}
	if got := Paginate(items, 3, 10); len(got) != 1 {
		t.Errorf("expected last item only, got %d", len(got))
	}
}

func TestApply_LowCompetitionFilter(t *testing.T) {
	q, _ := NormalizeQuery(domain.KeywordQuery{Filter: domain.FilterLowCompetition})

	got := Apply(sampleKeywords(), q)
	if texts(got) != "cb" {
		t.Errorf("expected low competition keywords by score, got %s", texts(got))
	}
}

func TestApply_PlatformFilter(t *testing.T) {
	q, _ := NormalizeQuery(domain.KeywordQuery{Platform: domain.PlatformGoogle, Sort: domain.SortVolume})

	got := Apply(sampleKeywords(), q)
	if texts(got) != "dc" {
		t.Errorf("expected google keywords by volume, got %s", texts(got))
	}
}

type stubStore struct {
	items []domain.Keyword
	query domain.KeywordQuery
}

func (s *stubStore) UpsertKeywords(context.Context, []domain.Keyword) error             { return nil }
func (s *stubStore) UpsertLongtails(context.Context, []domain.LongtailRecord) error     { return nil }
func (s *stubStore) Stats(context.Context) (*domain.CollectionStats, error)             { return nil, nil }
func (s *stubStore) ListKeywords(ctx context.Context, q domain.KeywordQuery) ([]domain.Keyword, error) {
	s.query = q
	return Apply(s.items, q), nil
}

func TestService_List(t *testing.T) {
	store := &stubStore{items: sampleKeywords()}
	service := NewService(interfaces.Dependencies{}, store)

	ranked, q, err := service.List(context.Background(), domain.KeywordQuery{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Sort != domain.SortScore || store.query.Limit != 2 {
		t.Errorf("store should receive the normalized query, got %+v", store.query)
	}
	if len(ranked) != 2 || ranked[0].Text != "c" {
		t.Fatalf("unexpected ranking: %+v", ranked)
	}
	if ranked[0].Quality != scoring.QualityPoor || ranked[0].Recommendation != scoring.RecommendTarget {
		t.Errorf("unexpected labels: %+v", ranked[0])
	}
}

func TestService_ListValidation(t *testing.T) {
	service := NewService(interfaces.Dependencies{}, &stubStore{})

	if _, _, err := service.List(context.Background(), domain.KeywordQuery{Sort: "nope"}); !errors.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
