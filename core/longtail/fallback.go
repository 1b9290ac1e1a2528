// ABOUTME: Fallback generator builds synthetic long-tail candidates from patterns
// ABOUTME: Used when the suggestion source is throttled, failing or empty

package longtail

import (
	"strings"

	"keywords-app-api/core/domain"
)

// MaxFallbackCandidates is how many patterns are applied to a seed
const MaxFallbackCandidates = 3

// DefaultPatterns are appended to the seed in order
var DefaultPatterns = []string{"추천", "후기", "가격", "비교", "순위", "종류", "방법"}

// FallbackGenerator produces deterministic candidates without network access
type FallbackGenerator struct {
	patterns []string
}

// NewFallbackGenerator creates a generator; an empty list uses DefaultPatterns
func NewFallbackGenerator(patterns []string) *FallbackGenerator {
	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, DefaultPatterns...)
	}
	return &FallbackGenerator{patterns: cleaned}
}

// Generate returns up to three "seed pattern" candidates numbered from 1
func (g *FallbackGenerator) Generate(seed string) []domain.LongtailCandidate {
	n := len(g.patterns)
	if n > MaxFallbackCandidates {
		n = MaxFallbackCandidates
	}

	candidates := make([]domain.LongtailCandidate, 0, n)
	for i := 0; i < n; i++ {
		candidates = append(candidates, domain.LongtailCandidate{
			Text:   seed + " " + g.patterns[i],
			Origin: domain.OriginPattern,
			Order:  i + 1,
		})
	}
	return candidates
}

// Patterns returns a copy of the configured pattern list
func (g *FallbackGenerator) Patterns() []string {
	return append([]string(nil), g.patterns...)
}
