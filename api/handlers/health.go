// ABOUTME: Health handler for the Huma API
// ABOUTME: Reports store connectivity, configured sources and feature flags

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"keywords-app-api/api/dto/responses"
	"keywords-app-api/pkg/featureflags"
)

// Pinger checks connectivity to a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health
type HealthHandler struct {
	store   Pinger
	sources map[string]bool
	flags   featureflags.Manager
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a health handler; store and flags may be nil
func NewHealthHandler(store Pinger, sources map[string]bool, flags featureflags.Manager) *HealthHandler {
	return &HealthHandler{
		store:   store,
		sources: sources,
		flags:   flags,
		started: time.Now(),
		now:     time.Now,
	}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Description: "Returns 503 when the keyword store is unreachable or an upstream is not configured",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Status int
	Body   responses.HealthResponse
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	now := h.now()
	body := responses.HealthResponse{
		Status:      "healthy",
		Timestamp:   now,
		Uptime:      now.Sub(h.started).Round(time.Second).String(),
		Database:    responses.DatabaseHealth{Connected: true},
		Environment: h.sources,
	}

	healthy := true
	if h.store != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.store.Ping(pingCtx); err != nil {
			body.Database = responses.DatabaseHealth{Connected: false, Error: err.Error()}
			healthy = false
		}
	}
	for _, configured := range h.sources {
		if !configured {
			healthy = false
		}
	}

	if h.flags != nil {
		body.Features = make(map[string]bool)
		for flag, on := range h.flags.GetAllFlags() {
			body.Features[string(flag)] = on
		}
	}

	status := http.StatusOK
	if !healthy {
		body.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	return &HealthOutput{Status: status, Body: body}, nil
}
