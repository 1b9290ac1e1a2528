// ABOUTME: Trends handlers for the Huma API
// ABOUTME: Serves the daily trends snapshot and per-keyword interest

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"keywords-app-api/api/dto/mappers"
	"keywords-app-api/api/dto/requests"
	"keywords-app-api/api/dto/responses"
	"keywords-app-api/core/collect"
)

// TrendsService is the subset of collect.TrendsService used by the handler
type TrendsService interface {
	DailyTrends(ctx context.Context, forceRefresh bool) (*collect.DailyTrendsResult, error)
	Insight(ctx context.Context, keyword string) (*collect.KeywordInsight, error)
}

// TrendsHandler handles trends requests
type TrendsHandler struct {
	service TrendsService
}

// NewTrendsHandler creates a trends handler
func NewTrendsHandler(service TrendsService) *TrendsHandler {
	return &TrendsHandler{service: service}
}

// RegisterRoutes registers the trends routes
func (h *TrendsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "dailyTrends",
		Method:      http.MethodGet,
		Path:        "/trends/google",
		Summary:     "Daily trending searches",
		Description: "Returns trending searches as scored keywords. Snapshots are cached; pass refresh=true to bypass the cache.",
		Tags:        []string{"Trends"},
	}, h.Daily)

	huma.Register(api, huma.Operation{
		OperationID: "keywordInsight",
		Method:      http.MethodPost,
		Path:        "/trends/google",
		Summary:     "Interest over time and related queries for a keyword",
		Tags:        []string{"Trends"},
	}, h.Insight)
}

// DailyTrendsInput defines the input for the Daily operation
type DailyTrendsInput struct {
	Refresh bool `query:"refresh" doc:"Bypass the trends cache"`
}

// DailyTrendsOutput defines the output for the Daily operation
type DailyTrendsOutput struct {
	Body responses.TrendsResponse
}

// Daily handles GET /trends/google
func (h *TrendsHandler) Daily(ctx context.Context, input *DailyTrendsInput) (*DailyTrendsOutput, error) {
	result, err := h.service.DailyTrends(ctx, input.Refresh)
	if err != nil {
		return nil, toHumaError(err)
	}

	data := mappers.ToKeywordResponses(result.Keywords)
	return &DailyTrendsOutput{Body: responses.TrendsResponse{
		Success:   true,
		Source:    result.Snapshot.Source,
		Cached:    result.Cached,
		Geo:       result.Snapshot.Geo,
		FetchedAt: result.Snapshot.FetchedAt,
		Count:     len(data),
		Data:      data,
	}}, nil
}

// InsightInput defines the input for the Insight operation
type InsightInput struct {
	Body requests.KeywordRequest
}

// InsightOutput defines the output for the Insight operation
type InsightOutput struct {
	Body responses.TrendInsightResponse
}

// Insight handles POST /trends/google
func (h *TrendsHandler) Insight(ctx context.Context, input *InsightInput) (*InsightOutput, error) {
	insight, err := h.service.Insight(ctx, input.Body.Keyword)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &InsightOutput{Body: responses.TrendInsightResponse{
		Success: true,
		Data:    mappers.ToInsightResponse(insight),
	}}, nil
}
