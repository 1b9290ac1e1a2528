// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for data persistence operations

package interfaces

import (
	"context"

	"keywords-app-api/core/domain"
)

// KeywordStore defines the interface for keyword persistence
type KeywordStore interface {
	// UpsertKeywords inserts or updates keywords keyed by their text
	UpsertKeywords(ctx context.Context, keywords []domain.Keyword) error

	// UpsertLongtails inserts or updates long-tail candidates keyed by their text
	UpsertLongtails(ctx context.Context, records []domain.LongtailRecord) error

	// ListKeywords returns stored keywords matching the query
	ListKeywords(ctx context.Context, query domain.KeywordQuery) ([]domain.Keyword, error)

	// Stats returns aggregate statistics over stored keywords
	Stats(ctx context.Context) (*domain.CollectionStats, error)
}
