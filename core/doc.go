// Package core contains the business logic for the Keywords API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (Keyword, LongtailCandidate, TrendItem, etc.)
// - scoring: Keyword scores, quality labels and recommendations
// - backoff: Per-source failure tracking that throttles flaky upstreams
// - longtail: Long-tail expansion with pattern fallback and volume enrichment
// - trends: Traffic parsing and normalization of trending searches
// - collect: Batch seed collection and the daily trends service
// - keywords: Listing, sorting and statistics over stored keywords
// - workers: Bounded worker pool for batch long-tail generation
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, sources, store)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "keywords-app-api/core/config"
//	    "keywords-app-api/core/interfaces"
//	    "keywords-app-api/core/longtail"
//	)
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	service := longtail.NewService(deps, suggestionSource,
//	    longtail.WithMetricsSource(adsClient),
//	)
//
//	result, err := service.GenerateLongtails(ctx, "캠핑",
//	    config.WithVolumeEnrichment(true),
//	)
package core
