package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywords-app-api/core/domain"
)

func TestStore_UpsertReplacesByText(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.UpsertKeywords(ctx, []domain.Keyword{
		{Text: "캠핑 의자", Score: 40, Platform: domain.PlatformNaver, CollectedAt: now},
		{Text: "등산화", Score: 70, Platform: domain.PlatformNaver, CollectedAt: now},
	}))
	require.NoError(t, store.UpsertKeywords(ctx, []domain.Keyword{
		{Text: " 캠핑  의자", Score: 90, Platform: domain.PlatformNaver, CollectedAt: now.Add(time.Minute)},
	}))

	items, err := store.ListKeywords(ctx, domain.KeywordQuery{Sort: domain.SortScore, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 90, items[0].Score)
}

func TestStore_ListAppliesFilters(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_ = store.UpsertKeywords(ctx, []domain.Keyword{
		{Text: "a", Competition: domain.CompetitionLow, Platform: domain.PlatformNaver, Score: 10},
		{Text: "b", Competition: domain.CompetitionHigh, Platform: domain.PlatformNaver, Score: 20},
		{Text: "c", Competition: domain.CompetitionLow, Platform: domain.PlatformGoogle, Score: 30},
	})

	items, err := store.ListKeywords(ctx, domain.KeywordQuery{
		Filter:   domain.FilterLowCompetition,
		Platform: domain.PlatformNaver,
		Sort:     domain.SortScore,
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Text)
}

func TestStore_Stats(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_ = store.UpsertKeywords(ctx, []domain.Keyword{
		{Text: "a", Competition: domain.CompetitionLow, CostPerClick: 100, Platform: domain.PlatformNaver},
		{Text: "b", Competition: domain.CompetitionMedium, CostPerClick: 201, Platform: domain.PlatformGoogle},
	})

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalKeywords)
	assert.Equal(t, 1, stats.LowCompetitionCount)
	assert.Equal(t, 150.5, stats.AverageCPC)
}

func TestStore_UpsertLongtails(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	record := func(text string) domain.LongtailRecord {
		return domain.LongtailRecord{
			SeedKeyword: "캠핑",
			Candidate:   domain.LongtailCandidate{Text: text, Origin: domain.OriginAutocomplete},
			Origin:      domain.ResultLiveAPI,
		}
	}

	require.NoError(t, store.UpsertLongtails(ctx, []domain.LongtailRecord{record("캠핑 의자"), record("캠핑 텐트")}))
	require.NoError(t, store.UpsertLongtails(ctx, []domain.LongtailRecord{record("캠핑 의자")}))

	assert.Equal(t, 2, store.LongtailCount())
}
