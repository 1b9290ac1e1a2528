// ABOUTME: Source interfaces for the keyword and trends upstreams
// ABOUTME: Defines contracts the collection services depend on

package interfaces

import (
	"context"

	"keywords-app-api/core/domain"
)

// MetricsSource looks up volume, competition and CPC for a keyword.
// Returns nil metrics and a nil error when the upstream has no exact match.
type MetricsSource interface {
	FetchKeywordMetrics(ctx context.Context, keyword string) (*domain.KeywordMetrics, error)
}

// RelatedKeywordSource lists keywords the paid-search API considers related
type RelatedKeywordSource interface {
	FetchRelatedKeywords(ctx context.Context, keyword string, limit int) ([]domain.KeywordMetrics, error)
}

// SuggestionSource returns autocomplete and related-search suggestions
type SuggestionSource interface {
	FetchSuggestions(ctx context.Context, keyword string) ([]domain.Suggestion, error)
}

// TrendsSource returns the current bulk trending searches
type TrendsSource interface {
	BulkTrends(ctx context.Context) (*domain.TrendsSnapshot, error)
}

// InterestSource returns per-keyword interest data from the trends provider
type InterestSource interface {
	InterestOverTime(ctx context.Context, keyword string) ([]domain.InterestPoint, error)
	RelatedQueries(ctx context.Context, keyword string) ([]domain.RelatedQuery, error)
}
