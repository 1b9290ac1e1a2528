package trends

import (
	"testing"
	"time"

	"keywords-app-api/core/domain"
)

func TestParseTraffic(t *testing.T) {
	tests := []struct {
		name     string
		input    domain.Traffic
		expected int
	}{
		{"thousands", domain.TrafficFromText("100K+"), 100000},
		{"millions", domain.TrafficFromText("2M+"), 2000000},
		{"decimal thousands", domain.TrafficFromText("1.5K"), 1500},
		{"grouped digits", domain.TrafficFromText("20,000+"), 20000},
		{"lowercase suffix", domain.TrafficFromText("50k+"), 50000},
		{"plain number", domain.TrafficFromNumber(1234), 1234},
		{"fractional number rounds", domain.TrafficFromNumber(99.6), 100},
		{"negative number", domain.TrafficFromNumber(-3), 0},
		{"not available", domain.TrafficFromText("N/A"), 0},
		{"absent", domain.Traffic{}, 0},
		{"garbage", domain.TrafficFromText("lots"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTraffic(tt.input); got != tt.expected {
				t.Errorf("ParseTraffic(%+v) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInferCompetition(t *testing.T) {
	tests := []struct {
		traffic  int
		expected domain.CompetitionTier
	}{
		{1_000_000, domain.CompetitionHigh},
		{999_999, domain.CompetitionMedium},
		{100_000, domain.CompetitionMedium},
		{99_999, domain.CompetitionLow},
		{0, domain.CompetitionLow},
	}

	for _, tt := range tests {
		if got := InferCompetition(tt.traffic); got != tt.expected {
			t.Errorf("InferCompetition(%d) = %s, want %s", tt.traffic, got, tt.expected)
		}
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		rank, traffic, expected int
	}{
		{0, 100_000, 80},
		{0, 1_000_000, 100},
		{1, 500_000, 85},
		{3, 50_000, 55},
		{5, 10_000, 35},
		{9, 0, 10},
		{10, 9_999, 5},
		{20, 2_000_000, 50},
	}

	for _, tt := range tests {
		if got := Score(tt.rank, tt.traffic); got != tt.expected {
			t.Errorf("Score(%d, %d) = %d, want %d", tt.rank, tt.traffic, got, tt.expected)
		}
	}
}

func TestNormalize(t *testing.T) {
	collectedAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	items := []domain.TrendItem{
		{Query: "월드컵", Traffic: domain.TrafficFromText("100K+"), ExploreLink: "https://trends.google.com/x", RelatedQueries: []string{"월드컵 일정"}},
		{Query: "날씨", Traffic: domain.TrafficFromNumber(2_000_000)},
		{Query: "unknown"},
	}

	keywords := Normalize(items, collectedAt)

	if len(keywords) != 3 {
		t.Fatalf("expected 3 keywords, got %d", len(keywords))
	}

	first := keywords[0]
	if first.SearchVolume != 100000 || first.Score != 80 || first.Competition != domain.CompetitionMedium {
		t.Errorf("unexpected first keyword: %+v", first)
	}
	if first.Platform != domain.PlatformGoogle || first.CostPerClick != 0 {
		t.Errorf("trend keywords should be google platform with zero CPC: %+v", first)
	}
	if first.Metadata.FormattedTraffic != "100K+" || first.Metadata.RelatedQueries[0] != "월드컵 일정" {
		t.Errorf("unexpected metadata: %+v", first.Metadata)
	}
	if !first.CollectedAt.Equal(collectedAt) {
		t.Error("collection time should be kept")
	}

	second := keywords[1]
	if second.Competition != domain.CompetitionHigh || second.Score != 95 {
		t.Errorf("unexpected second keyword: %+v", second)
	}

	third := keywords[2]
	if third.SearchVolume != 0 || third.Score != 45 || third.Competition != domain.CompetitionLow {
		t.Errorf("unexpected third keyword: %+v", third)
	}
}
