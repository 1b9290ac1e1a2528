// ABOUTME: Keyword listing handler for the Huma API
// ABOUTME: Filters, sorts and pages stored keywords

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"keywords-app-api/api/dto/mappers"
	"keywords-app-api/api/dto/responses"
	"keywords-app-api/core/domain"
	"keywords-app-api/core/keywords"
)

// KeywordLister lists stored keywords
type KeywordLister interface {
	List(ctx context.Context, q domain.KeywordQuery) ([]keywords.RankedKeyword, domain.KeywordQuery, error)
}

// KeywordsHandler handles keyword listing
type KeywordsHandler struct {
	lister KeywordLister
}

// NewKeywordsHandler creates a keyword listing handler
func NewKeywordsHandler(lister KeywordLister) *KeywordsHandler {
	return &KeywordsHandler{lister: lister}
}

// RegisterRoutes registers the keyword listing route
func (h *KeywordsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listKeywords",
		Method:      http.MethodGet,
		Path:        "/keywords",
		Summary:     "List stored keywords",
		Tags:        []string{"Keywords"},
	}, h.List)
}

// ListKeywordsInput defines the query parameters for List
type ListKeywordsInput struct {
	Filter   string `query:"filter" doc:"all or lowCompetition"`
	Sort     string `query:"sort" doc:"score, volume, cpc or recent"`
	Platform string `query:"platform" doc:"naver or google"`
	Limit    int    `query:"limit" doc:"Page size (default 50, max 200)"`
	Offset   int    `query:"offset" doc:"Number of keywords to skip"`
}

// ListKeywordsOutput defines the output for List
type ListKeywordsOutput struct {
	Body responses.KeywordListResponse
}

// List handles GET /keywords
func (h *KeywordsHandler) List(ctx context.Context, input *ListKeywordsInput) (*ListKeywordsOutput, error) {
	ranked, q, err := h.lister.List(ctx, domain.KeywordQuery{
		Filter:   domain.KeywordFilter(input.Filter),
		Sort:     domain.KeywordSort(input.Sort),
		Platform: domain.Platform(input.Platform),
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, toHumaError(err)
	}

	out := make([]responses.KeywordResponse, 0, len(ranked))
	for _, k := range ranked {
		out = append(out, mappers.ToRankedKeywordResponse(k))
	}

	return &ListKeywordsOutput{Body: responses.KeywordListResponse{
		Keywords: out,
		Total:    len(out),
		Filter:   string(q.Filter),
		Sort:     string(q.Sort),
		Limit:    q.Limit,
		Offset:   q.Offset,
	}}, nil
}
