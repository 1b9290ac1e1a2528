package keywords

import (
	"math"

	"keywords-app-api/core/domain"
)

// ComputeStats aggregates a keyword set in memory. Average CPC only counts keywords with a bid.
func ComputeStats(items []domain.Keyword) *domain.CollectionStats {
	stats := &domain.CollectionStats{
		ByPlatform:    map[domain.Platform]int{},
		ByCompetition: map[domain.CompetitionTier]int{},
	}

	var cpcTotal float64
	var cpcCount int
	for _, k := range items {
		stats.TotalKeywords++
		stats.ByPlatform[k.Platform]++
		if k.Competition.IsValid() {
			stats.ByCompetition[k.Competition]++
		}
		if k.Competition == domain.CompetitionLow {
			stats.LowCompetitionCount++
		}
		if k.CostPerClick > 0 {
			cpcTotal += k.CostPerClick
			cpcCount++
		}

		if stats.LastCollectedAt == nil || k.CollectedAt.After(*stats.LastCollectedAt) {
			at := k.CollectedAt
			stats.LastCollectedAt = &at
		}
	}

	if cpcCount > 0 {
		stats.AverageCPC = RoundCPC(cpcTotal / float64(cpcCount))
	}
	return stats
}

// RoundCPC rounds an average bid to two decimals
func RoundCPC(v float64) float64 {
	return math.Round(v*100) / 100
}
