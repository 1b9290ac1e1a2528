// ABOUTME: Collection handlers for the Huma API
// ABOUTME: Runs batch collection and reports store and source status

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

// Collector is the subset of collect.Service used by the handler
type Collector interface {
	CollectAll(ctx context.Context, seeds []string) (*collect.Report, error)
	Status(ctx context.Context, sources map[string]bool) (*collect.Status, error)
}

// CollectHandler handles collection requests
type CollectHandler struct {
	collector Collector
	sources   map[string]bool
}

// NewCollectHandler creates a handler. sources maps each upstream to
// whether its credentials are configured.
func NewCollectHandler(collector Collector, sources map[string]bool) *CollectHandler {
	return &CollectHandler{collector: collector, sources: sources}
}

// RegisterRoutes registers the collection routes
func (h *CollectHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "collectAll",
		Method:      http.MethodPost,
		Path:        "/collect/all",
		Summary:     "Collect and score seed keywords",
		Description: "Looks up metrics and interest for each seed, scores them and stores the results",
		Tags:        []string{"Collection"},
	}, h.CollectAll)

	huma.Register(api, huma.Operation{
		OperationID: "collectStatus",
		Method:      http.MethodGet,
		Path:        "/collect/status",
		Summary:     "Collection status",
		Tags:        []string{"Collection"},
	}, h.Status)
}

// CollectAllInput defines the input for the CollectAll operation
type CollectAllInput struct {
	Body *requests.CollectAllRequest `required:"false"`
}

// CollectAllOutput defines the output for the CollectAll operation
type CollectAllOutput struct {
	Body responses.CollectAllResponse
}

// CollectAll handles POST /collect/all
func (h *CollectHandler) CollectAll(ctx context.Context, input *CollectAllInput) (*CollectAllOutput, error) {
	var seeds []string
	if input.Body != nil {
		seeds = input.Body.Seeds
	}

	report, err := h.collector.CollectAll(ctx, seeds)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &CollectAllOutput{Body: mappers.ToCollectAllResponse(report)}, nil
}

// CollectStatusOutput defines the output for the Status operation
type CollectStatusOutput struct {
	Body responses.CollectStatusResponse
}

// Status handles GET /collect/status
func (h *CollectHandler) Status(ctx context.Context, _ *struct{}) (*CollectStatusOutput, error) {
	status, err := h.collector.Status(ctx, h.sources)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &CollectStatusOutput{Body: mappers.ToCollectStatusResponse(status)}, nil
}
