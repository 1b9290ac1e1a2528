// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as upstream APIs, persistence, caching and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache backed by go-cache
// - cache/redis: Redis cache shared between replicas
// - http/standard: Standard library HTTP client with retry logic
// - logger/logrus: JSON logger with optional rotating file output
// - metrics: Prometheus recorder for upstream calls and collections
// - sources/naver: Search ads keyword tool and autocomplete clients
// - sources/serpapi: Trending searches, interest over time and related queries
// - sources/googlerss: Google Trends daily RSS feed
// - sources/upstream: Shared response handling for source clients
// - storage/sqlite, storage/postgres, storage/memory: Keyword stores
// - storage/query: SQL builder shared by the database stores
//
// # Sources
//
// Source clients return core UpstreamError values so callers can tell
// throttling (429) apart from outages:
//
//	ads, err := naver.NewAdsClient(httpClient, naver.AdsCredentials{
//	    APIKey:     apiKey,
//	    SecretKey:  secret,
//	    CustomerID: customerID,
//	})
//	metrics, err := ads.FetchKeywordMetrics(ctx, "캠핑")
//
// # Storage
//
// Postgres migrations are embedded and applied with golang-migrate:
//
//	if err := postgres.RunMigrations(databaseURL); err != nil {
//	    return err
//	}
//	store, err := postgres.NewStore(ctx, databaseURL, logger)
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logrus.NewLogger(logrus.Config{Level: "info", File: "api.log"})
//	logger.Info("Collected keywords", map[string]interface{}{
//	    "seed":  "캠핑",
//	    "count": 12,
//	})
package infrastructure
