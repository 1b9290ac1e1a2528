// Package api provides the HTTP layer for the keywords service.
// It uses Huma on a chi router for OpenAPI generation and request validation.
//
// # Layout
//
//   - server.go: router, CORS, middleware and Huma configuration
//   - handlers/: one handler type per route group, each with RegisterRoutes
//   - dto/: request and response shapes plus mappers from core types
//   - middleware/: request IDs, logging and per-client rate limiting
//
// The OpenAPI document is served at /openapi.json and the interactive docs
// at /docs. Prometheus metrics are mounted at /metrics when enabled.
//
// # Usage
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	})
//	handlers.NewLongtailHandler(longtailService, pool).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// # Errors
//
// Handlers map core errors onto RFC 7807 problem responses: validation
// failures are 400, missing keywords 404, upstream rate limits 429 and
// unavailable or unconfigured upstreams 503.
package api
