// ABOUTME: Keyword metrics as returned by the paid-search keyword API
// ABOUTME: Also holds aggregate collection statistics and listing queries

package domain

import "time"

// KeywordMetrics is the normalized metrics record for one keyword
type KeywordMetrics struct {
	Keyword      string
	VolumePC     int
	VolumeMobile int
	Competition  CompetitionTier
	AvgCPC       float64
}

// TotalVolume returns PC plus mobile volume
func (m KeywordMetrics) TotalVolume() int {
	return m.VolumePC + m.VolumeMobile
}

// CollectionStats summarizes what the store currently holds
type CollectionStats struct {
	TotalKeywords       int
	LowCompetitionCount int
	AverageCPC          float64
	ByPlatform          map[Platform]int
	ByCompetition       map[CompetitionTier]int
	LastCollectedAt     *time.Time
}

// KeywordFilter selects a subset of stored keywords
type KeywordFilter string

const (
	FilterAll            KeywordFilter = "all"
	FilterLowCompetition KeywordFilter = "lowCompetition"
)

// KeywordSort orders stored keywords
type KeywordSort string

const (
	SortScore  KeywordSort = "score"
	SortVolume KeywordSort = "volume"
	SortCPC    KeywordSort = "cpc"
	SortRecent KeywordSort = "recent"
)

// KeywordQuery describes a listing request against the keyword store
type KeywordQuery struct {
	Filter   KeywordFilter
	Sort     KeywordSort
	Platform Platform
	Limit    int
	Offset   int
}

// LongtailRecord is a persisted long-tail candidate
type LongtailRecord struct {
	SeedKeyword string
	Candidate   LongtailCandidate
	Origin      ResultOrigin
	CollectedAt time.Time
}
