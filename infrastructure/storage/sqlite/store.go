// ABOUTME: SQLite keyword store for single-node deployments
// ABOUTME: Keeps collected keywords and long-tail candidates in a local database file

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"keywords-app-api/core/domain"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/keywords"
	"keywords-app-api/infrastructure/storage/query"
)

// Store implements interfaces.KeywordStore on SQLite
type Store struct {
	db     *sql.DB
	logger interfaces.Logger
}

// NewStore opens (or creates) the database at path and prepares the schema
func NewStore(path string, logger interfaces.Logger) (*Store, error) {
	if path == "" {
		path = "keywords.db"
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// one writer at a time; also keeps :memory: databases on a single connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS keywords (
			text_key TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			search_volume INTEGER NOT NULL DEFAULT 0,
			competition TEXT NOT NULL DEFAULT '',
			cpc REAL NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			platform TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '',
			collected_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_keywords_score ON keywords(score DESC);
		CREATE INDEX IF NOT EXISTS idx_keywords_collected ON keywords(collected_at DESC);

		CREATE TABLE IF NOT EXISTS longtails (
			seed_key TEXT NOT NULL,
			candidate_key TEXT NOT NULL,
			seed TEXT NOT NULL,
			candidate TEXT NOT NULL,
			candidate_origin TEXT NOT NULL,
			result_origin TEXT NOT NULL,
			search_volume INTEGER NOT NULL DEFAULT 0,
			competition TEXT NOT NULL DEFAULT '',
			cpc REAL NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			collected_at TIMESTAMP NOT NULL,
			PRIMARY KEY (seed_key, candidate_key)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

type statement func(query.Placeholder) (string, []interface{}, error)

func (s *Store) execAll(ctx context.Context, stmts []statement) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, build := range stmts {
		q, args, err := build(query.Question)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("Skipping invalid row", map[string]interface{}{"error": err.Error()})
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("failed to upsert: %w", err)
		}
	}
	return tx.Commit()
}

// UpsertKeywords inserts or replaces keywords by normalized text
func (s *Store) UpsertKeywords(ctx context.Context, items []domain.Keyword) error {
	stmts := make([]statement, 0, len(items))
	for _, k := range items {
		k := k
		stmts = append(stmts, func(p query.Placeholder) (string, []interface{}, error) {
			return query.UpsertKeyword(p, k)
		})
	}
	return s.execAll(ctx, stmts)
}

// UpsertLongtails inserts or replaces long-tail records by seed and candidate
func (s *Store) UpsertLongtails(ctx context.Context, records []domain.LongtailRecord) error {
	stmts := make([]statement, 0, len(records))
	for _, r := range records {
		r := r
		stmts = append(stmts, func(p query.Placeholder) (string, []interface{}, error) {
			return query.UpsertLongtail(p, r)
		})
	}
	return s.execAll(ctx, stmts)
}

// ListKeywords runs the listing query
func (s *Store) ListKeywords(ctx context.Context, q domain.KeywordQuery) ([]domain.Keyword, error) {
	stmt, args, err := query.ListKeywords(query.Question, q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
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

	var avg float64
	if err := s.db.QueryRowContext(ctx, query.StatsTotals).Scan(&stats.TotalKeywords, &stats.LowCompetitionCount, &avg); err != nil {
		return nil, fmt.Errorf("failed to read totals: %w", err)
	}
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
	err := s.db.QueryRowContext(ctx, query.StatsLatest).Scan(&latest)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to read latest collection: %w", err)
	default:
		stats.LastCollectedAt = &latest
	}

	return stats, nil
}

func (s *Store) countBy(ctx context.Context, stmt string, set func(string, int)) error {
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("failed to group keywords: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		set(key, n)
	}
	return rows.Err()
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
