// ABOUTME: Postgres keyword store backed by a pgx connection pool
// ABOUTME: Schema is managed by embedded golang-migrate migrations

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"keywords-app-api/core/domain"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/keywords"
	"keywords-app-api/infrastructure/storage/postgres/migrations"
	"keywords-app-api/infrastructure/storage/query"
)

// Store implements interfaces.KeywordStore on Postgres
type Store struct {
	pool   *pgxpool.Pool
	logger interfaces.Logger
}

// NewStore creates a connection pool and verifies it
func NewStore(ctx context.Context, connString string, logger interfaces.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool, logger: logger}, nil
}

// RunMigrations applies all embedded migrations
func RunMigrations(connString string) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func (s *Store) upsert(ctx context.Context, n int, build func(i int) (string, []interface{}, error)) error {
	batch := &pgx.Batch{}
	for i := 0; i < n; i++ {
		q, args, err := build(i)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("Skipping invalid row", map[string]interface{}{"error": err.Error()})
			}
			continue
		}
		batch.Queue(q, args...)
	}
	if batch.Len() == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert: %w", err)
	}
	return tx.Commit(ctx)
}

// UpsertKeywords inserts or updates keywords by normalized text
func (s *Store) UpsertKeywords(ctx context.Context, items []domain.Keyword) error {
	return s.upsert(ctx, len(items), func(i int) (string, []interface{}, error) {
		return query.UpsertKeyword(query.Dollar, items[i])
	})
}

// UpsertLongtails inserts or updates long-tail records by seed and candidate
func (s *Store) UpsertLongtails(ctx context.Context, records []domain.LongtailRecord) error {
	return s.upsert(ctx, len(records), func(i int) (string, []interface{}, error) {
		return query.UpsertLongtail(query.Dollar, records[i])
	})
}

// ListKeywords runs the listing query
func (s *Store) ListKeywords(ctx context.Context, q domain.KeywordQuery) ([]domain.Keyword, error) {
	stmt, args, err := query.ListKeywords(query.Dollar, q)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list keywords: %w", err)
	}
	defer rows.Close()

	out := []domain.Keyword{}
	for rows.Next() {
		k, err := query.ScanKeyword(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Stats aggregates the keywords table
func (s *Store) Stats(ctx context.Context) (*domain.CollectionStats, error) {
	stats := &domain.CollectionStats{
		ByPlatform:    map[domain.Platform]int{},
		ByCompetition: map[domain.CompetitionTier]int{},
	}

	var total, low int64
	var avg float64
	if err := s.pool.QueryRow(ctx, query.StatsTotals).Scan(&total, &low, &avg); err != nil {
		return nil, fmt.Errorf("failed to read totals: %w", err)
	}
	stats.TotalKeywords = int(total)
	stats.LowCompetitionCount = int(low)
	stats.AverageCPC = keywords.RoundCPC(avg)

	if err := s.countBy(ctx, query.StatsByPlatform, func(k string, n int) {
		stats.ByPlatform[domain.Platform(k)] = n
	}); err != nil {
		return nil, err
	}
	if err := s.countBy(ctx, query.StatsByCompetition, func(k string, n int) {
		stats.ByCompetition[domain.CompetitionTier(k)] = n
	}); err != nil {
		return nil, err
	}

	var latest time.Time
	err := s.pool.QueryRow(ctx, query.StatsLatest).Scan(&latest)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to read latest collection: %w", err)
	default:
		stats.LastCollectedAt = &latest
	}

	return stats, nil
}

func (s *Store) countBy(ctx context.Context, stmt string, set func(string, int)) error {
	rows, err := s.pool.Query(ctx, stmt)
	if err != nil {
		return fmt.Errorf("failed to group keywords: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		set(key, int(n))
	}
	return rows.Err()
}

// Ping checks the pool
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the pool
func (s *Store) Close() {
	s.pool.Close()
}
