// ABOUTME: Keyword service lists stored keywords with quality annotations
// ABOUTME: Wraps the keyword store behind validated listing queries

package keywords

import (
	"context"
	"errors"

	"keywords-app-api/core/domain"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/scoring"
)

// RankedKeyword is a stored keyword with derived labels
type RankedKeyword struct {
	domain.Keyword
	Quality        scoring.Quality
	Recommendation scoring.Recommendation
}

// Annotate derives quality and recommendation for a keyword
func Annotate(k domain.Keyword) RankedKeyword {
	return RankedKeyword{
		Keyword:        k,
		Quality:        scoring.KeywordQuality(k.SearchVolume, k.Competition),
		Recommendation: scoring.Recommend(k.Score),
	}
}

// Service serves keyword listings
type Service struct {
	deps  interfaces.Dependencies
	store interfaces.KeywordStore
}

// NewService creates a keyword listing service
func NewService(deps interfaces.Dependencies, store interfaces.KeywordStore) *Service {
	return &Service{deps: deps, store: store}
}

// List returns stored keywords matching the query
func (s *Service) List(ctx context.Context, q domain.KeywordQuery) ([]RankedKeyword, domain.KeywordQuery, error) {
	q, err := NormalizeQuery(q)
	if err != nil {
		return nil, q, err
	}

	if s.store == nil {
		return nil, q, errors.New("keyword store not configured")
	}

	stored, err := s.store.ListKeywords(ctx, q)
	if err != nil {
		return nil, q, err
	}

	out := make([]RankedKeyword, 0, len(stored))
	for _, k := range stored {
		out = append(out, Annotate(k))
	}
	return out, q, nil
}
