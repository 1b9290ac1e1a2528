// ABOUTME: Trend normalizer converts bulk trending searches into scored keywords
// ABOUTME: Infers competition from traffic and scores by rank plus traffic step

package trends

import (
	"math"
	"strconv"
	"strings"
	"time"

	"keywords-app-api/core/domain"
)

// ParseTraffic converts a traffic value such as "200K+" or 1500 to an integer.
// Absent or unparseable values yield 0.
func ParseTraffic(t domain.Traffic) int {
	if t.Number != nil {
		n := *t.Number
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return 0
		}
		return int(math.Round(n))
	}
	return ParseTrafficString(t.Text)
}

// ParseTrafficString handles the formatted string form of traffic
func ParseTrafficString(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "N/A") {
		return 0
	}

	s = strings.NewReplacer("+", "", ",", "").Replace(strings.ToUpper(s))

	multiplier := 1.0
	switch {
	case strings.Contains(s, "K"):
		multiplier = 1_000
		s = strings.ReplaceAll(s, "K", "")
	case strings.Contains(s, "M"):
		multiplier = 1_000_000
		s = strings.ReplaceAll(s, "M", "")
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return int(math.Round(f * multiplier))
}

// InferCompetition maps traffic to a tier since the trends source reports none
func InferCompetition(traffic int) domain.CompetitionTier {
	switch {
	case traffic >= 1_000_000:
		return domain.CompetitionHigh
	case traffic >= 100_000:
		return domain.CompetitionMedium
	default:
		return domain.CompetitionLow
	}
}

// Score combines the zero-based rank and traffic into a 0-100 score
func Score(rank, traffic int) int {
	rankScore := 50 - rank*5
	if rankScore < 0 {
		rankScore = 0
	}
	return rankScore + trafficScore(traffic)
}

func trafficScore(traffic int) int {
	switch {
	case traffic >= 1_000_000:
		return 50
	case traffic >= 500_000:
		return 40
	case traffic >= 100_000:
		return 30
	case traffic >= 50_000:
		return 20
	case traffic >= 10_000:
		return 10
	default:
		return 5
	}
}

// Normalize converts trend items in rank order into keywords
func Normalize(items []domain.TrendItem, collectedAt time.Time) []domain.Keyword {
	keywords := make([]domain.Keyword, 0, len(items))
	for rank, item := range items {
		traffic := ParseTraffic(item.Traffic)
		keywords = append(keywords, domain.Keyword{
			Text:         item.Query,
			SearchVolume: traffic,
			Competition:  InferCompetition(traffic),
			CostPerClick: 0,
			Score:        Score(rank, traffic),
			Platform:     domain.PlatformGoogle,
			Metadata: &domain.KeywordMetadata{
				RelatedQueries:   item.RelatedQueries,
				ExploreLink:      item.ExploreLink,
				SerpAPILink:      item.SerpAPILink,
				FormattedTraffic: item.Traffic.String(),
				TrafficValue:     traffic,
			},
			CollectedAt: collectedAt,
		})
	}
	return keywords
}
