// ABOUTME: Paid-search keyword handlers for the Huma API
// ABOUTME: Exposes exact-match metrics and related keyword lookups

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"keywords-app-api/api/dto/mappers"
	"keywords-app-api/api/dto/requests"
	"keywords-app-api/api/dto/responses"
	"keywords-app-api/core/errors"
	"keywords-app-api/core/interfaces"
)

// NaverHandler handles paid-search keyword lookups
type NaverHandler struct {
	metrics interfaces.MetricsSource
	related interfaces.RelatedKeywordSource
}

// NewNaverHandler creates a handler; nil sources answer 503
func NewNaverHandler(metrics interfaces.MetricsSource, related interfaces.RelatedKeywordSource) *NaverHandler {
	return &NaverHandler{metrics: metrics, related: related}
}

// RegisterRoutes registers the paid-search routes
func (h *NaverHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "naverKeyword",
		Method:      http.MethodPost,
		Path:        "/naver/keyword",
		Summary:     "Look up keyword metrics",
		Description: "Returns search volume, competition and CPC for an exact keyword match",
		Tags:        []string{"Naver"},
	}, h.Keyword)

	huma.Register(api, huma.Operation{
		OperationID: "naverRelated",
		Method:      http.MethodPost,
		Path:        "/naver/related",
		Summary:     "List related keywords",
		Tags:        []string{"Naver"},
	}, h.Related)
}

// NaverKeywordInput defines the input for the Keyword operation
type NaverKeywordInput struct {
	Body requests.KeywordRequest
}

// NaverKeywordOutput defines the output for the Keyword operation
type NaverKeywordOutput struct {
	Body responses.NaverKeywordResponse
}

// Keyword handles POST /naver/keyword
func (h *NaverHandler) Keyword(ctx context.Context, input *NaverKeywordInput) (*NaverKeywordOutput, error) {
	if h.metrics == nil {
		return nil, toHumaError(&errors.ConfigurationError{Component: "naver-ads", Message: "credentials not configured"})
	}

	m, err := h.metrics.FetchKeywordMetrics(ctx, input.Body.Keyword)
	if err != nil {
		return nil, toHumaError(err)
	}
	if m == nil {
		return nil, toHumaError(&errors.NotFoundError{Resource: "keyword", ID: input.Body.Keyword})
	}

	return &NaverKeywordOutput{Body: responses.NaverKeywordResponse{
		Success: true,
		Data:    mappers.ToKeywordMetricsResponse(*m),
	}}, nil
}

// NaverRelatedInput defines the input for the Related operation
type NaverRelatedInput struct {
	Body requests.RelatedKeywordsRequest
}

// NaverRelatedOutput defines the output for the Related operation
type NaverRelatedOutput struct {
	Body responses.NaverRelatedResponse
}

// Related handles POST /naver/related
func (h *NaverHandler) Related(ctx context.Context, input *NaverRelatedInput) (*NaverRelatedOutput, error) {
	if h.related == nil {
		return nil, toHumaError(&errors.ConfigurationError{Component: "naver-ads", Message: "credentials not configured"})
	}

	related, err := h.related.FetchRelatedKeywords(ctx, input.Body.Keyword, input.Body.Limit)
	if err != nil {
		return nil, toHumaError(err)
	}

	data := make([]responses.KeywordMetricsResponse, 0, len(related))
	for _, m := range related {
		data = append(data, mappers.ToKeywordMetricsResponse(m))
	}

	return &NaverRelatedOutput{Body: responses.NaverRelatedResponse{
		Success: true,
		Count:   len(data),
		Data:    data,
	}}, nil
}
