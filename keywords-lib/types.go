// ABOUTME: Public types for the Keywords library API
// ABOUTME: Provides user-friendly types that wrap internal domain models

package keywords

import (
	"time"

	"keywords-app-api/core/collect"
	"keywords-app-api/core/domain"
)

// LongtailResult is the expansion of one seed keyword
type LongtailResult struct {
	Seed string `json:"seed"`

	// Origin is "api" when live suggestions were used, "fallback" otherwise
	Origin    string     `json:"origin"`
	Longtails []Longtail `json:"longtails"`
}

// Longtail is one candidate phrase. Metric fields are nil when the
// candidate was not enriched.
type Longtail struct {
	Text         string   `json:"text"`
	Source       string   `json:"source"`
	Order        int      `json:"order"`
	SearchVolume *int     `json:"search_volume,omitempty"`
	Competition  string   `json:"competition,omitempty"`
	CostPerClick *float64 `json:"cpc,omitempty"`
	Score        *int     `json:"score,omitempty"`
}

// BatchItem is the outcome for one seed in a batch
type BatchItem struct {
	Seed   string          `json:"seed"`
	Result *LongtailResult `json:"result,omitempty"`
	Err    error           `json:"-"`
}

// Keyword is a scored keyword
type Keyword struct {
	Text         string    `json:"text"`
	SearchVolume int       `json:"search_volume"`
	Competition  string    `json:"competition"`
	CostPerClick float64   `json:"cpc"`
	Score        int       `json:"score"`
	Platform     string    `json:"platform"`
	Traffic      string    `json:"traffic,omitempty"`
	CollectedAt  time.Time `json:"collected_at"`
}

// Trends is a daily trending snapshot converted to keywords
type Trends struct {
	Source    string    `json:"source"`
	Geo       string    `json:"geo"`
	FetchedAt time.Time `json:"fetched_at"`
	Cached    bool      `json:"cached"`
	Keywords  []Keyword `json:"keywords"`
}

func longtailResultFromDomain(r *domain.CollectionResult) *LongtailResult {
	out := &LongtailResult{
		Seed:      r.SeedKeyword,
		Origin:    string(r.Origin),
		Longtails: make([]Longtail, 0, len(r.Candidates)),
	}
	for _, c := range r.Candidates {
		lt := Longtail{
			Text:   c.Text,
			Source: string(c.Origin),
			Order:  c.Order,
		}
		if e := c.Enrichment; e != nil {
			volume, cpc, score := e.SearchVolume, e.CostPerClick, e.Score
			lt.SearchVolume = &volume
			lt.Competition = string(e.Competition)
			lt.CostPerClick = &cpc
			lt.Score = &score
		}
		out.Longtails = append(out.Longtails, lt)
	}
	return out
}

func keywordFromDomain(k domain.Keyword) Keyword {
	out := Keyword{
		Text:         k.Text,
		SearchVolume: k.SearchVolume,
		Competition:  string(k.Competition),
		CostPerClick: k.CostPerClick,
		Score:        k.Score,
		Platform:     string(k.Platform),
		CollectedAt:  k.CollectedAt,
	}
	if k.Metadata != nil {
		out.Traffic = k.Metadata.FormattedTraffic
	}
	return out
}

func trendsFromDomain(r *collect.DailyTrendsResult) *Trends {
	out := &Trends{
		Cached:   r.Cached,
		Keywords: make([]Keyword, 0, len(r.Keywords)),
	}
	if r.Snapshot != nil {
		out.Source = r.Snapshot.Source
		out.Geo = r.Snapshot.Geo
		out.FetchedAt = r.Snapshot.FetchedAt
	}
	for _, k := range r.Keywords {
		out.Keywords = append(out.Keywords, keywordFromDomain(k))
	}
	return out
}
