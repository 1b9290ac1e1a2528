// ABOUTME: Listing utilities for stored keywords
// ABOUTME: Normalizes listing queries and filters, sorts and paginates keyword slices

package keywords

import (
	"sort"

	"keywords-app-api/core/domain"
	"keywords-app-api/core/errors"
)

const (
	// DefaultLimit is the page size when none is given
	DefaultLimit = 50

	// MaxLimit caps the page size
	MaxLimit = 200
)

// NormalizeQuery fills defaults and rejects unknown filter or sort values
func NormalizeQuery(q domain.KeywordQuery) (domain.KeywordQuery, error) {
	switch q.Filter {
	case "":
		q.Filter = domain.FilterAll
	case domain.FilterAll, domain.FilterLowCompetition:
	default:
		return q, &errors.ValidationError{Field: "filter", Message: "filter must be 'all' or 'lowCompetition'"}
	}

	switch q.Sort {
	case "":
		q.Sort = domain.SortScore
	case domain.SortScore, domain.SortVolume, domain.SortCPC, domain.SortRecent:
	default:
		return q, &errors.ValidationError{Field: "sort", Message: "sort must be one of score, volume, cpc, recent"}
	}

	switch q.Platform {
	case "", domain.PlatformNaver, domain.PlatformGoogle:
	default:
		return q, &errors.ValidationError{Field: "platform", Message: "platform must be 'naver' or 'google'"}
	}

	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q, nil
}

// Matches reports whether a keyword passes the query's filters
func Matches(k domain.Keyword, q domain.KeywordQuery) bool {
	if q.Filter == domain.FilterLowCompetition && k.Competition != domain.CompetitionLow {
		return false
	}
	if q.Platform != "" && k.Platform != q.Platform {
		return false
	}
	return true
}

// SortKeywords orders keywords in place. Ties fall back to score, then
// volume, then text so the order is deterministic.
func SortKeywords(items []domain.Keyword, by domain.KeywordSort) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch by {
		case domain.SortVolume:
			if a.SearchVolume != b.SearchVolume {
				return a.SearchVolume > b.SearchVolume
			}
		case domain.SortCPC:
			if a.CostPerClick != b.CostPerClick {
				return a.CostPerClick > b.CostPerClick
			}
		case domain.SortRecent:
			if !a.CollectedAt.Equal(b.CollectedAt) {
				return a.CollectedAt.After(b.CollectedAt)
			}
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.SearchVolume != b.SearchVolume {
			return a.SearchVolume > b.SearchVolume
		}
		return a.Text < b.Text
	})
}

// Paginate returns the window [offset, offset+limit) of items
func Paginate(items []domain.Keyword, offset, limit int) []domain.Keyword {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	if offset >= len(items) {
		return []domain.Keyword{}
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// Apply filters, sorts and paginates a copy of items
func Apply(items []domain.Keyword, q domain.KeywordQuery) []domain.Keyword {
	filtered := make([]domain.Keyword, 0, len(items))
	for _, k := range items {
		if Matches(k, q) {
			filtered = append(filtered, k)
		}
	}
	SortKeywords(filtered, q.Sort)
	return Paginate(filtered, q.Offset, q.Limit)
}
