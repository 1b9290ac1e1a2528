// ABOUTME: Long-tail candidate models produced by the collection orchestrator
// ABOUTME: Defines candidate origins, enrichment data and the collection result

package domain

import (
	"regexp"
	"strings"
)

// CandidateOrigin records where a long-tail candidate came from
type CandidateOrigin string

const (
	OriginAutocomplete CandidateOrigin = "autocomplete"
	OriginRelated      CandidateOrigin = "related"
	OriginPattern      CandidateOrigin = "pattern"
)

// ResultOrigin tells whether candidates came from a live API or the fallback generator
type ResultOrigin string

const (
	ResultLiveAPI  ResultOrigin = "api"
	ResultFallback ResultOrigin = "fallback"
)

// Suggestion is a single autocomplete or related-search entry from an upstream
type Suggestion struct {
	Text   string
	Origin CandidateOrigin
	Rank   int
}

// Enrichment holds metrics attached to a candidate after a successful lookup
type Enrichment struct {
	SearchVolume int
	Competition  CompetitionTier
	CostPerClick float64
	Score        int
}

// LongtailCandidate is one expanded keyword derived from a seed
type LongtailCandidate struct {
	Text       string
	Origin     CandidateOrigin
	Order      int
	Enrichment *Enrichment
}

// CollectionResult is the outcome of expanding one seed keyword
type CollectionResult struct {
	SeedKeyword string
	Candidates  []LongtailCandidate
	Origin      ResultOrigin
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ComparisonKey normalizes text for duplicate detection:
// trimmed, lowercased, inner whitespace collapsed to one space.
func ComparisonKey(text string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}
