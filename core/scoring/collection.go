package scoring

import (
	"math"

	"keywords-app-api/core/domain"
)

// interestWindow is how many trailing interest samples feed the trend bonus
const interestWindow = 5

// CollectionScore combines volume, competition and recent interest into
// the score used by batch collection. Metrics may be nil when the keyword
// API had nothing for the keyword. Capped at 100.
func CollectionScore(m *domain.KeywordMetrics, interest []domain.InterestPoint) int {
	score := 0
	if m != nil {
		if volume := m.TotalVolume(); volume > 0 {
			score += volumeTierScore(volume)
		}
		score += tierScore(m.Competition)
	}

	if avg := RecentInterestAverage(interest); avg > 0 {
		score += int(math.Floor(avg * 0.2))
	}

	if score > 100 {
		return 100
	}
	return score
}

func tierScore(tier domain.CompetitionTier) int {
	switch tier {
	case domain.CompetitionLow:
		return 30
	case domain.CompetitionMedium:
		return 20
	case domain.CompetitionHigh:
		return 10
	default:
		return 0
	}
}

// RecentInterestAverage averages the last few interest samples
func RecentInterestAverage(points []domain.InterestPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	start := len(points) - interestWindow
	if start < 0 {
		start = 0
	}
	recent := points[start:]

	total := 0
	for _, p := range recent {
		total += p.Value
	}
	return float64(total) / float64(len(recent))
}

func volumeTierScore(volume int) int {
	switch {
	case volume > 100000:
		return 50
	case volume > 50000:
		return 40
	case volume > 10000:
		return 30
	case volume > 1000:
		return 20
	default:
		return 10
	}
}
