package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywords-app-api/core/domain"
)

// testStore connects to POSTGRES_TEST_URL and resets both tables
func testStore(t *testing.T) *Store {
	t.Helper()

	connString := os.Getenv("POSTGRES_TEST_URL")
	if connString == "" {
		t.Skip("Skipping Postgres integration tests - set POSTGRES_TEST_URL to run")
	}

	require.NoError(t, RunMigrations(connString))

	ctx := context.Background()
	store, err := NewStore(ctx, connString, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.pool.Exec(ctx, "DELETE FROM longtails")
		store.pool.Exec(ctx, "DELETE FROM keywords")
		store.Close()
	})
	store.pool.Exec(ctx, "DELETE FROM longtails")
	store.pool.Exec(ctx, "DELETE FROM keywords")
	return store
}

func TestStore_UpsertAndList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.UpsertKeywords(ctx, []domain.Keyword{
		{Text: "캠핑 의자", SearchVolume: 1200, Competition: domain.CompetitionLow, CostPerClick: 300, Score: 80, Platform: domain.PlatformNaver, CollectedAt: base},
		{Text: "캠핑 텐트", SearchVolume: 9000, Competition: domain.CompetitionHigh, CostPerClick: 1500, Score: 60, Platform: domain.PlatformNaver, CollectedAt: base.Add(time.Hour)},
	}))
	require.NoError(t, store.UpsertKeywords(ctx, []domain.Keyword{
		{Text: "캠핑 의자", SearchVolume: 1300, Competition: domain.CompetitionLow, CostPerClick: 310, Score: 85, Platform: domain.PlatformNaver, CollectedAt: base.Add(2 * time.Hour)},
	}))

	items, err := store.ListKeywords(ctx, domain.KeywordQuery{Sort: domain.SortVolume, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "캠핑 텐트", items[0].Text)
	assert.Equal(t, 85, items[1].Score)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalKeywords)
	assert.Equal(t, 1, stats.LowCompetitionCount)
	assert.Equal(t, 905.0, stats.AverageCPC)
	require.NotNil(t, stats.LastCollectedAt)
	assert.True(t, stats.LastCollectedAt.Equal(base.Add(2*time.Hour)))
}

func TestStore_UpsertLongtails(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	record := domain.LongtailRecord{
		SeedKeyword: "캠핑",
		Candidate:   domain.LongtailCandidate{Text: "캠핑 추천", Origin: domain.OriginPattern},
		Origin:      domain.ResultFallback,
		CollectedAt: time.Now(),
	}
	require.NoError(t, store.UpsertLongtails(ctx, []domain.LongtailRecord{record, record}))

	var n int64
	require.NoError(t, store.pool.QueryRow(ctx, "SELECT COUNT(*) FROM longtails").Scan(&n))
	assert.EqualValues(t, 1, n)
}
