// ABOUTME: Competition scoring maps a tier and combined volume to a 0-100 score
// ABOUTME: Also computes the integrated collection score and keyword quality buckets

package scoring

import "keywords-app-api/core/domain"

// CompetitionScore returns the quality score for a keyword.
// Base by tier, then -10 below 100 volume or +5 above 10000.
func CompetitionScore(tier domain.CompetitionTier, combinedVolume int) int {
	score := 0
	switch tier {
	case domain.CompetitionLow:
		score = 85
	case domain.CompetitionMedium:
		score = 55
	case domain.CompetitionHigh:
		score = 25
	}

	if combinedVolume < 100 {
		score -= 10
	} else if combinedVolume > 10000 {
		score += 5
	}

	return domain.ClampScore(score)
}

// MetricsScore scores a metrics record using its PC plus mobile volume
func MetricsScore(m domain.KeywordMetrics) int {
	return CompetitionScore(m.Competition, m.TotalVolume())
}
