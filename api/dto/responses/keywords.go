// ABOUTME: Response DTOs for keyword, long-tail and trends endpoints
// ABOUTME: Field names follow the camelCase JSON used by the dashboard

package responses

import "time"

// KeywordResponse is a stored or freshly scored keyword
type KeywordResponse struct {
	Keyword        string                   `json:"keyword" doc:"Keyword text"`
	SearchVolume   int                      `json:"searchVolume" doc:"Combined monthly search volume"`
	Competition    string                   `json:"competition" doc:"Competition tier (low, medium, high)"`
	CPC            float64                  `json:"cpc" doc:"Average cost per click"`
	Score          int                      `json:"score" doc:"Quality score 0-100"`
	Platform       string                   `json:"platform" doc:"Source platform"`
	Quality        string                   `json:"quality,omitempty" doc:"Quality bucket"`
	Recommendation string                   `json:"recommendation,omitempty" doc:"Suggested action"`
	Metadata       *KeywordMetadataResponse `json:"metadata,omitempty" doc:"Platform specific details"`
	CollectedAt    time.Time                `json:"collectedAt" doc:"When the keyword was collected"`
}

// KeywordMetadataResponse holds optional per-platform details
type KeywordMetadataResponse struct {
	RelatedQueries   []string `json:"relatedQueries,omitempty"`
	ExploreLink      string   `json:"exploreLink,omitempty"`
	SerpAPILink      string   `json:"serpapiLink,omitempty"`
	FormattedTraffic string   `json:"formattedTraffic,omitempty"`
	TrafficValue     int      `json:"trafficValue,omitempty"`
	InterestAverage  float64  `json:"interestAverage,omitempty"`
}

// LongtailResponse is one long-tail candidate
type LongtailResponse struct {
	Keyword      string   `json:"keyword" doc:"Candidate text"`
	Type         string   `json:"type" doc:"Candidate origin (autocomplete, related, pattern)"`
	Order        int      `json:"order" doc:"1-based rank within its origin"`
	SearchVolume *int     `json:"searchVolume,omitempty" doc:"Present when enriched"`
	Competition  string   `json:"competition,omitempty" doc:"Present when enriched"`
	CPC          *float64 `json:"cpc,omitempty" doc:"Present when enriched"`
	Score        *int     `json:"score,omitempty" doc:"Present when enriched"`
}

// LongtailResultResponse is the expansion of one seed
type LongtailResultResponse struct {
	SeedKeyword string             `json:"seedKeyword" doc:"Normalized seed"`
	Origin      string             `json:"origin" doc:"api when live suggestions were used, fallback otherwise"`
	Count       int                `json:"count" doc:"Number of candidates"`
	Longtails   []LongtailResponse `json:"longtails" doc:"Deduplicated candidates"`
}

// GenerateLongtailResponse wraps a single expansion
type GenerateLongtailResponse struct {
	Success bool                   `json:"success"`
	Data    LongtailResultResponse `json:"data"`
}

// BatchItemResponse is one seed of a batch expansion
type BatchItemResponse struct {
	Seed   string                  `json:"seed"`
	Result *LongtailResultResponse `json:"result,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

// BatchLongtailResponse wraps a batch expansion in seed order
type BatchLongtailResponse struct {
	Success bool                `json:"success"`
	Data    []BatchItemResponse `json:"data"`
}

// KeywordMetricsResponse is a paid-search metrics record
type KeywordMetricsResponse struct {
	Keyword      string  `json:"keyword"`
	SearchVolume int     `json:"searchVolume" doc:"PC plus mobile volume"`
	PCVolume     int     `json:"pcVolume"`
	MobileVolume int     `json:"mobileVolume"`
	Competition  string  `json:"competition"`
	CPC          float64 `json:"cpc"`
	Score        int     `json:"score" doc:"Competition score 0-100"`
}

// NaverKeywordResponse wraps one metrics record
type NaverKeywordResponse struct {
	Success bool                   `json:"success"`
	Data    KeywordMetricsResponse `json:"data"`
}

// NaverRelatedResponse wraps related metrics records
type NaverRelatedResponse struct {
	Success bool                     `json:"success"`
	Count   int                      `json:"count"`
	Data    []KeywordMetricsResponse `json:"data"`
}

// TrendsResponse is the current bulk trends snapshot as scored keywords
type TrendsResponse struct {
	Success   bool              `json:"success"`
	Source    string            `json:"source" doc:"Provider that produced the snapshot"`
	Cached    bool              `json:"cached" doc:"Served from the trends cache"`
	Geo       string            `json:"geo"`
	FetchedAt time.Time         `json:"fetchedAt"`
	Count     int               `json:"count"`
	Data      []KeywordResponse `json:"data"`
}

// InterestPointResponse is one interest-over-time sample
type InterestPointResponse struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// RelatedQueryResponse is a related trends query
type RelatedQueryResponse struct {
	Query string `json:"query"`
	Value int    `json:"value"`
	Link  string `json:"link,omitempty"`
}

// InsightResponse is interest and related queries for one keyword
type InsightResponse struct {
	Keyword         string                  `json:"keyword"`
	InterestAverage float64                 `json:"interestAverage"`
	Interest        []InterestPointResponse `json:"interest"`
	RelatedQueries  []RelatedQueryResponse  `json:"relatedQueries"`
}

// TrendInsightResponse wraps a keyword insight
type TrendInsightResponse struct {
	Success bool            `json:"success"`
	Data    InsightResponse `json:"data"`
}

// SeedFailureResponse explains why a seed produced nothing
type SeedFailureResponse struct {
	Seed   string `json:"seed"`
	Reason string `json:"reason"`
}

// CollectAllResponse summarizes a batch collection
type CollectAllResponse struct {
	Success    bool                  `json:"success"`
	Collected  int                   `json:"collected"`
	Failed     int                   `json:"failed"`
	Stored     bool                  `json:"stored"`
	DurationMs int64                 `json:"durationMs"`
	Keywords   []KeywordResponse     `json:"keywords"`
	Failures   []SeedFailureResponse `json:"failures,omitempty"`
}

// GateStateResponse is the backoff bookkeeping for one source
type GateStateResponse struct {
	ConsecutiveFailures int        `json:"consecutiveFailures"`
	LastFailureAt       *time.Time `json:"lastFailureAt,omitempty"`
}

// CollectStatusResponse reports store statistics and source health
type CollectStatusResponse struct {
	TotalKeywords       int                          `json:"totalKeywords"`
	LowCompetitionCount int                          `json:"lowCompetitionCount"`
	AverageCPC          float64                      `json:"averageCpc" doc:"Average CPC over keywords with a CPC"`
	CompetitionStats    map[string]int               `json:"competitionStats"`
	PlatformStats       map[string]int               `json:"platformStats"`
	LastCollection      *time.Time                   `json:"lastCollection"`
	Sources             map[string]bool              `json:"sources" doc:"Whether each source is configured"`
	Gate                map[string]GateStateResponse `json:"gate,omitempty"`
	IsHealthy           bool                         `json:"isHealthy"`
	Timestamp           time.Time                    `json:"timestamp"`
}

// KeywordListResponse is one page of stored keywords
type KeywordListResponse struct {
	Keywords []KeywordResponse `json:"keywords"`
	Total    int               `json:"total" doc:"Number of keywords on this page"`
	Filter   string            `json:"filter"`
	Sort     string            `json:"sort"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// HealthResponse reports process and dependency health
type HealthResponse struct {
	Status      string          `json:"status" doc:"healthy or degraded"`
	Timestamp   time.Time       `json:"timestamp"`
	Uptime      string          `json:"uptime"`
	Database    DatabaseHealth  `json:"database"`
	Environment map[string]bool `json:"environment" doc:"Configured upstream credentials"`
	Features    map[string]bool `json:"features,omitempty"`
}

// DatabaseHealth is the keyword store connectivity
type DatabaseHealth struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}
