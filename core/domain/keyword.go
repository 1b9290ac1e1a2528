// ABOUTME: Keyword domain model represents a scored search keyword from one platform
// ABOUTME: Provides competition tier and platform enums with tolerant parsing

package domain

import (
	"strings"
	"time"
)

// CompetitionTier is the advertiser competition level reported for a keyword
type CompetitionTier string

const (
	CompetitionLow     CompetitionTier = "low"
	CompetitionMedium  CompetitionTier = "medium"
	CompetitionHigh    CompetitionTier = "high"
	CompetitionUnknown CompetitionTier = ""
)

// ParseCompetitionTier converts an upstream competition label to a tier.
// Naver reports Korean labels, everything else uses English ones.
func ParseCompetitionTier(label string) CompetitionTier {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "low", "낮음":
		return CompetitionLow
	case "medium", "mid", "중간":
		return CompetitionMedium
	case "high", "높음":
		return CompetitionHigh
	default:
		return CompetitionUnknown
	}
}

// IsValid reports whether the tier is one of the three known levels
func (c CompetitionTier) IsValid() bool {
	return c == CompetitionLow || c == CompetitionMedium || c == CompetitionHigh
}

// Platform identifies which upstream produced a keyword
type Platform string

const (
	// PlatformNaver is the primary paid-search keyword API
	PlatformNaver Platform = "naver"

	// PlatformGoogle is the trends provider
	PlatformGoogle Platform = "google"
)

// Keyword represents a normalized, scored keyword
type Keyword struct {
	// Text is the keyword as shown to users
	Text string

	// SearchVolume is the combined monthly volume across devices
	SearchVolume int

	// Competition is the advertiser competition tier
	Competition CompetitionTier

	// CostPerClick is the average bid in the platform currency
	CostPerClick float64

	// Score is the 0-100 quality score
	Score int

	// Platform is the source that produced this keyword
	Platform Platform

	// Metadata holds platform specific extras
	Metadata *KeywordMetadata

	// CollectedAt is when the keyword was collected
	CollectedAt time.Time
}

// KeywordMetadata holds optional per-platform details
type KeywordMetadata struct {
	RelatedQueries   []string `json:"relatedQueries,omitempty"`
	ExploreLink      string   `json:"exploreLink,omitempty"`
	SerpAPILink      string   `json:"serpapiLink,omitempty"`
	FormattedTraffic string   `json:"formattedTraffic,omitempty"`
	TrafficValue     int      `json:"trafficValue,omitempty"`
	InterestAverage  float64  `json:"interestAverage,omitempty"`
}

// ClampScore bounds a score to the 0-100 range
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
