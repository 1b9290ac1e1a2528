// ABOUTME: Long-tail handlers for the Huma API
// ABOUTME: Expands one seed inline or several seeds on the worker pool

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"keywords-app-api/api/dto/mappers"
	"keywords-app-api/api/dto/requests"
	"keywords-app-api/api/dto/responses"
	"keywords-app-api/core/config"
	"keywords-app-api/core/domain"
	"keywords-app-api/core/workers"
)

// LongtailGenerator expands one seed keyword
type LongtailGenerator interface {
	GenerateLongtails(ctx context.Context, seed string, opts ...config.GenerateOption) (*domain.CollectionResult, error)
}

// BatchGenerator expands several seeds concurrently
type BatchGenerator interface {
	GenerateBatch(ctx context.Context, seeds []string, opts ...config.GenerateOption) ([]workers.LongtailOutcome, error)
}

// LongtailHandler handles long-tail generation requests
type LongtailHandler struct {
	generator LongtailGenerator
	batch     BatchGenerator
}

// NewLongtailHandler creates a handler. batch may be nil, in which case
// batch requests run sequentially on the generator.
func NewLongtailHandler(generator LongtailGenerator, batch BatchGenerator) *LongtailHandler {
	return &LongtailHandler{generator: generator, batch: batch}
}

// RegisterRoutes registers all long-tail routes
func (h *LongtailHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "generateLongtails",
		Method:      http.MethodPost,
		Path:        "/longtail/generate",
		Summary:     "Generate long-tail keywords",
		Description: "Expands a seed keyword from live suggestions, falling back to pattern candidates when the suggestion source is unavailable",
		Tags:        []string{"Longtail"},
	}, h.Generate)

	huma.Register(api, huma.Operation{
		OperationID: "generateLongtailBatch",
		Method:      http.MethodPost,
		Path:        "/longtail/batch",
		Summary:     "Generate long-tail keywords for several seeds",
		Tags:        []string{"Longtail"},
	}, h.GenerateBatch)
}

// GenerateInput defines the input for the Generate operation
type GenerateInput struct {
	Body requests.GenerateLongtailRequest
}

// GenerateOutput defines the output for the Generate operation
type GenerateOutput struct {
	Body responses.GenerateLongtailResponse
}

// Generate handles POST /longtail/generate
func (h *LongtailHandler) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	opts := []config.GenerateOption{config.WithVolumeEnrichment(input.Body.IncludeVolume)}
	if input.Body.EnrichmentLimit != nil {
		opts = append(opts, config.WithEnrichmentLimit(*input.Body.EnrichmentLimit))
	}

	result, err := h.generator.GenerateLongtails(ctx, input.Body.Keyword, opts...)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &GenerateOutput{Body: responses.GenerateLongtailResponse{
		Success: true,
		Data:    mappers.ToLongtailResultResponse(result),
	}}, nil
}

// BatchInput defines the input for the GenerateBatch operation
type BatchInput struct {
	Body requests.BatchLongtailRequest
}

// BatchOutput defines the output for the GenerateBatch operation
type BatchOutput struct {
	Body responses.BatchLongtailResponse
}

// GenerateBatch handles POST /longtail/batch. Per-seed failures are reported
// inline; the request itself only fails when the pool rejects all work.
func (h *LongtailHandler) GenerateBatch(ctx context.Context, input *BatchInput) (*BatchOutput, error) {
	opts := []config.GenerateOption{config.WithVolumeEnrichment(input.Body.IncludeVolume)}

	outcomes, err := h.runBatch(ctx, input.Body.Keywords, opts)
	if err != nil {
		return nil, huma.Error503ServiceUnavailable("Batch generation unavailable", err)
	}

	items := make([]responses.BatchItemResponse, 0, len(outcomes))
	for _, out := range outcomes {
		item := responses.BatchItemResponse{Seed: out.Seed}
		if out.Err != nil {
			item.Error = out.Err.Error()
		} else if out.Result != nil {
			result := mappers.ToLongtailResultResponse(out.Result)
			item.Result = &result
		}
		items = append(items, item)
	}

	return &BatchOutput{Body: responses.BatchLongtailResponse{Success: true, Data: items}}, nil
}

func (h *LongtailHandler) runBatch(ctx context.Context, seeds []string, opts []config.GenerateOption) ([]workers.LongtailOutcome, error) {
	if h.batch != nil {
		return h.batch.GenerateBatch(ctx, seeds, opts...)
	}

	outcomes := make([]workers.LongtailOutcome, 0, len(seeds))
	for _, seed := range seeds {
		result, err := h.generator.GenerateLongtails(ctx, seed, opts...)
		outcomes = append(outcomes, workers.LongtailOutcome{Seed: seed, Result: result, Err: err})
	}
	return outcomes, nil
}
