package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywords-app-api/api/dto/responses"
	"keywords-app-api/core/backoff"
	"keywords-app-api/core/collect"
	"keywords-app-api/core/domain"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/keywords"
)

func TestCollectHandler_CollectAll(t *testing.T) {
	var gotSeeds []string
	collector := &mockCollector{
		collectFunc: func(ctx context.Context, seeds []string) (*collect.Report, error) {
			gotSeeds = seeds
			return &collect.Report{
				Keywords:   []domain.Keyword{{Text: "캠핑", Score: 70, Platform: domain.PlatformNaver, CollectedAt: collectedAt}},
				Failures:   []collect.SeedFailure{{Seed: "낚시", Reason: "no data from any source"}},
				Stored:     true,
				StartedAt:  collectedAt,
				FinishedAt: collectedAt.Add(1500 * time.Millisecond),
			}, nil
		},
	}

	_, api := humatest.New(t)
	NewCollectHandler(collector, nil).RegisterRoutes(api)

	resp := api.Post("/collect/all", map[string]any{"seeds": []string{"캠핑", "낚시"}})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body responses.CollectAllResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, []string{"캠핑", "낚시"}, gotSeeds)
	assert.Equal(t, 1, body.Collected)
	assert.Equal(t, 1, body.Failed)
	assert.True(t, body.Stored)
	assert.Equal(t, int64(1500), body.DurationMs)
}

func TestCollectHandler_CollectAllWithoutBody(t *testing.T) {
	called := false
	collector := &mockCollector{
		collectFunc: func(ctx context.Context, seeds []string) (*collect.Report, error) {
			called = true
			assert.Nil(t, seeds)
			return &collect.Report{StartedAt: collectedAt, FinishedAt: collectedAt}, nil
		},
	}

	_, api := humatest.New(t)
	NewCollectHandler(collector, nil).RegisterRoutes(api)

	resp := api.Post("/collect/all")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.True(t, called)
}

func TestCollectHandler_Status(t *testing.T) {
	failedAt := collectedAt.Add(-time.Minute)
	collector := &mockCollector{
		statusFunc: func(ctx context.Context, sources map[string]bool) (*collect.Status, error) {
			return &collect.Status{
				Stats: &domain.CollectionStats{
					TotalKeywords:   3,
					AverageCPC:      416.67,
					ByPlatform:      map[domain.Platform]int{domain.PlatformNaver: 2, domain.PlatformGoogle: 1},
					ByCompetition:   map[domain.CompetitionTier]int{domain.CompetitionLow: 1},
					LastCollectedAt: &collectedAt,
				},
				Sources:     sources,
				Healthy:     false,
				GateState:   map[string]backoff.State{"naver-autocomplete": {ConsecutiveFailures: 2, LastFailureAt: &failedAt}},
				GeneratedAt: collectedAt,
			}, nil
		},
	}

	_, api := humatest.New(t)
	NewCollectHandler(collector, map[string]bool{"naver": true, "serpapi": false}).RegisterRoutes(api)

	resp := api.Get("/collect/status")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body responses.CollectStatusResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, 3, body.TotalKeywords)
	assert.Equal(t, 416.67, body.AverageCPC)
	assert.Equal(t, 2, body.PlatformStats["naver"])
	assert.Equal(t, 1, body.CompetitionStats["low"])
	assert.False(t, body.IsHealthy)
	assert.False(t, body.Sources["serpapi"])
	assert.Equal(t, 2, body.Gate["naver-autocomplete"].ConsecutiveFailures)
}

func TestKeywordsHandler_List(t *testing.T) {
	var got domain.KeywordQuery
	lister := &mockLister{
		listFunc: func(ctx context.Context, q domain.KeywordQuery) ([]keywords.RankedKeyword, domain.KeywordQuery, error) {
			got = q
			q.Limit = 10
			return []keywords.RankedKeyword{keywords.Annotate(domain.Keyword{Text: "캠핑", SearchVolume: 1500, Competition: domain.CompetitionLow, Score: 85})}, q, nil
		},
	}

	_, api := humatest.New(t)
	NewKeywordsHandler(lister).RegisterRoutes(api)

	resp := api.Get("/keywords?filter=lowCompetition&sort=volume&limit=10&offset=5")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body responses.KeywordListResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, domain.FilterLowCompetition, got.Filter)
	assert.Equal(t, domain.SortVolume, got.Sort)
	assert.Equal(t, 5, got.Offset)
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "excellent", body.Keywords[0].Quality)
	assert.Equal(t, "target", body.Keywords[0].Recommendation)
}

func TestKeywordsHandler_InvalidSort(t *testing.T) {
	lister := &mockLister{
		listFunc: func(ctx context.Context, q domain.KeywordQuery) ([]keywords.RankedKeyword, domain.KeywordQuery, error) {
			return keywords.NewService(interfaces.Dependencies{}, nil).List(ctx, q)
		},
	}

	_, api := humatest.New(t)
	NewKeywordsHandler(lister).RegisterRoutes(api)

	assert.Equal(t, http.StatusBadRequest, api.Get("/keywords?sort=alphabetical").Code)
}
