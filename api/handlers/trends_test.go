package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywords-app-api/api/dto/responses"
	"keywords-app-api/core/collect"
	"keywords-app-api/core/domain"
	coreerrors "keywords-app-api/core/errors"
)

func TestTrendsHandler_Daily(t *testing.T) {
	var forced bool
	service := &mockTrendsService{
		dailyFunc: func(ctx context.Context, forceRefresh bool) (*collect.DailyTrendsResult, error) {
			forced = forceRefresh
			return &collect.DailyTrendsResult{
				Snapshot: &domain.TrendsSnapshot{Source: "serpapi", Geo: "KR", FetchedAt: collectedAt},
				Keywords: []domain.Keyword{{
					Text:         "월드컵",
					SearchVolume: 100000,
					Competition:  domain.CompetitionMedium,
					Score:        80,
					Platform:     domain.PlatformGoogle,
					Metadata:     &domain.KeywordMetadata{FormattedTraffic: "100K+"},
					CollectedAt:  collectedAt,
				}},
				Cached: true,
			}, nil
		},
	}

	_, api := humatest.New(t)
	NewTrendsHandler(service).RegisterRoutes(api)

	resp := api.Get("/trends/google?refresh=true")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body responses.TrendsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.True(t, forced)
	assert.Equal(t, "serpapi", body.Source)
	assert.True(t, body.Cached)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "100K+", body.Data[0].Metadata.FormattedTraffic)
	assert.Equal(t, "good", body.Data[0].Quality)
}

func TestTrendsHandler_DailyNoSource(t *testing.T) {
	service := &mockTrendsService{
		dailyFunc: func(ctx context.Context, forceRefresh bool) (*collect.DailyTrendsResult, error) {
			return nil, &coreerrors.ConfigurationError{Component: "trends", Message: "no trends source configured"}
		},
	}

	_, api := humatest.New(t)
	NewTrendsHandler(service).RegisterRoutes(api)

	assert.Equal(t, http.StatusServiceUnavailable, api.Get("/trends/google").Code)
}

func TestTrendsHandler_Insight(t *testing.T) {
	service := &mockTrendsService{
		insightFunc: func(ctx context.Context, keyword string) (*collect.KeywordInsight, error) {
			return &collect.KeywordInsight{
				Keyword:         keyword,
				Interest:        []domain.InterestPoint{{Date: "Jun 1", Value: 40}},
				InterestAverage: 40,
			}, nil
		},
	}

	_, api := humatest.New(t)
	NewTrendsHandler(service).RegisterRoutes(api)

	resp := api.Post("/trends/google", map[string]any{"keyword": "캠핑"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body responses.TrendInsightResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "캠핑", body.Data.Keyword)
	assert.Len(t, body.Data.Interest, 1)
	assert.NotNil(t, body.Data.RelatedQueries)
	assert.Empty(t, body.Data.RelatedQueries)
}
