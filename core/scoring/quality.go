package scoring

import "keywords-app-api/core/domain"

// Quality is a coarse label for how attractive a keyword is to target
type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityAverage   Quality = "average"
	QualityPoor      Quality = "poor"
)

// KeywordQuality buckets a keyword by volume and competition
func KeywordQuality(volume int, tier domain.CompetitionTier) Quality {
	switch {
	case volume >= 1000 && tier == domain.CompetitionLow:
		return QualityExcellent
	case volume >= 500 && tier != domain.CompetitionHigh:
		return QualityGood
	case volume >= 100:
		return QualityAverage
	default:
		return QualityPoor
	}
}

// Recommendation is the suggested action for a keyword
type Recommendation string

const (
	RecommendTarget  Recommendation = "target"
	RecommendMonitor Recommendation = "monitor"
	RecommendSkip    Recommendation = "skip"
)

// Recommend derives an action from the quality score
func Recommend(score int) Recommendation {
	switch {
	case score >= 70:
		return RecommendTarget
	case score >= 40:
		return RecommendMonitor
	default:
		return RecommendSkip
	}
}
