// ABOUTME: In-memory keyword store used when no database is configured
// ABOUTME: Upserts are keyed by normalized keyword text

package memory

import (
	"context"
	"sync"

	"keywords-app-api/core/domain"
	"keywords-app-api/core/keywords"
)

// Store implements interfaces.KeywordStore in process memory
type Store struct {
	mu        sync.RWMutex
	keywords  map[string]domain.Keyword
	longtails map[string]domain.LongtailRecord
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		keywords:  make(map[string]domain.Keyword),
		longtails: make(map[string]domain.LongtailRecord),
	}
}

// UpsertKeywords stores keywords, replacing earlier entries with the same text
func (s *Store) UpsertKeywords(ctx context.Context, items []domain.Keyword) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range items {
		s.keywords[domain.ComparisonKey(k.Text)] = k
	}
	return nil
}

// UpsertLongtails stores long-tail candidates per seed
func (s *Store) UpsertLongtails(ctx context.Context, records []domain.LongtailRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		key := domain.ComparisonKey(r.SeedKeyword) + "|" + domain.ComparisonKey(r.Candidate.Text)
		s.longtails[key] = r
	}
	return nil
}

// ListKeywords filters, sorts and pages the stored keywords
func (s *Store) ListKeywords(ctx context.Context, q domain.KeywordQuery) ([]domain.Keyword, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return keywords.Apply(s.snapshot(), q), nil
}

// Stats aggregates the stored keywords
func (s *Store) Stats(ctx context.Context) (*domain.CollectionStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return keywords.ComputeStats(s.snapshot()), nil
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// LongtailCount returns how many long-tail records are stored
func (s *Store) LongtailCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.longtails)
}

func (s *Store) snapshot() []domain.Keyword {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Keyword, 0, len(s.keywords))
	for _, k := range s.keywords {
		out = append(out, k)
	}
	return out
}
