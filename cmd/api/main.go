// ABOUTME: Main entry point for the Keywords API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"keywords-app-api/api"
	"keywords-app-api/api/handlers"
	"keywords-app-api/core/backoff"
	"keywords-app-api/core/collect"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/core/keywords"
	"keywords-app-api/core/longtail"
	"keywords-app-api/core/workers"
	"keywords-app-api/infrastructure/cache/memory"
	"keywords-app-api/infrastructure/cache/redis"
	stdhttp "keywords-app-api/infrastructure/http/standard"
	logruslogger "keywords-app-api/infrastructure/logger/logrus"
	"keywords-app-api/infrastructure/metrics"
	"keywords-app-api/infrastructure/sources/googlerss"
	"keywords-app-api/infrastructure/sources/naver"
	"keywords-app-api/infrastructure/sources/serpapi"
	memstore "keywords-app-api/infrastructure/storage/memory"
	"keywords-app-api/infrastructure/storage/postgres"
	"keywords-app-api/infrastructure/storage/sqlite"
	"keywords-app-api/pkg/config"
	"keywords-app-api/pkg/featureflags"
)

// keywordStore is a KeywordStore that can report its connectivity
type keywordStore interface {
	interfaces.KeywordStore
	handlers.Pinger
}

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.NewLogger(logruslogger.Config{
		Level:     cfg.Log.Level,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	flags := featureflags.NewEnvManager("FEATURE_")

	logger.Info("Starting Keywords API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"store_type": cfg.Store.Type,
		"workers":    cfg.Server.WorkerCount,
		"features":   flags.GetAllFlags(),
	})

	var recorder *metrics.Recorder
	var metricsRecorder interfaces.MetricsRecorder = interfaces.NoopMetrics{}
	if flags.IsEnabled(featureflags.MetricsEnabled) {
		recorder = metrics.NewRecorder()
		metricsRecorder = recorder
	}

	httpClient := stdhttp.NewStandardHTTPClient(cfg.Server.UpstreamTimeout)

	deps := interfaces.Dependencies{
		HTTPClient: httpClient,
		Logger:     logger,
		Metrics:    metricsRecorder,
	}
	if flags.IsEnabled(featureflags.TrendsCache) {
		deps.Cache = newCache(cfg, logger)
	}

	store, closeStore := newStore(cfg, logger)
	defer closeStore()

	// Sources. Interface values stay nil when a source is not configured.
	var adsSource interface {
		interfaces.MetricsSource
		interfaces.RelatedKeywordSource
	}
	if cfg.Naver.Configured() {
		ads, err := naver.NewAdsClient(httpClient, naver.AdsCredentials{
			APIKey:     cfg.Naver.APIKey,
			SecretKey:  cfg.Naver.SecretKey,
			CustomerID: cfg.Naver.CustomerID,
		}, naver.WithAdsMetrics(metricsRecorder))
		if err != nil {
			logger.Warn("Naver ads client disabled", map[string]interface{}{"error": err.Error()})
		} else {
			adsSource = ads
		}
	}

	var trendsSource interfaces.TrendsSource
	var interestSource interfaces.InterestSource
	if cfg.Trends.SerpAPIKey != "" {
		serp, err := serpapi.NewTrendsClient(httpClient, cfg.Trends.SerpAPIKey, serpapi.DefaultBreakerSettings(),
			serpapi.WithGeo(cfg.Trends.Geo),
			serpapi.WithMetrics(metricsRecorder),
			serpapi.WithLogger(logger),
		)
		if err != nil {
			logger.Warn("SerpAPI trends client disabled", map[string]interface{}{"error": err.Error()})
		} else {
			trendsSource = serp
			interestSource = serp
		}
	}

	suggestions := naver.NewAutocompleteClient(httpClient)
	gate := backoff.NewGate()

	// Services
	longtailOpts := []longtail.ServiceOption{
		longtail.WithGate(gate),
		longtail.WithEnrichmentDelay(cfg.Collection.EnrichmentDelay),
	}
	if adsSource != nil {
		longtailOpts = append(longtailOpts, longtail.WithMetricsSource(adsSource))
	}
	if flags.IsEnabled(featureflags.LongtailPersist) {
		longtailOpts = append(longtailOpts, longtail.WithStore(store))
	}
	if len(cfg.Collection.FallbackPatterns) > 0 {
		longtailOpts = append(longtailOpts, longtail.WithFallbackGenerator(longtail.NewFallbackGenerator(cfg.Collection.FallbackPatterns)))
	}
	longtailService := longtail.NewService(deps, suggestions, longtailOpts...)

	pool := workers.NewLongtailWorker(longtailService, workers.WorkerConfig{MaxWorkers: cfg.Server.WorkerCount})
	if err := pool.Start(); err != nil {
		log.Fatalf("Failed to start worker pool: %v", err)
	}

	var collectMetrics interfaces.MetricsSource
	if adsSource != nil {
		collectMetrics = adsSource
	}
	collectOpts := []collect.Option{
		collect.WithDelay(cfg.Collection.CollectDelay),
		collect.WithBackoffGate(gate),
	}
	if interestSource != nil {
		collectOpts = append(collectOpts, collect.WithInterest(interestSource))
	}
	collectService := collect.NewService(deps, collectMetrics, store, collectOpts...)

	trendsOpts := []collect.TrendsOption{
		collect.WithGeo(cfg.Trends.Geo),
		collect.WithCacheTTL(cfg.Trends.CacheTTL),
		collect.WithTrendsStore(store),
	}
	if interestSource != nil {
		trendsOpts = append(trendsOpts, collect.WithInterestSource(interestSource))
	}
	if flags.IsEnabled(featureflags.RSSTrendsFallback) {
		rss := googlerss.NewFeedClient(httpClient, googlerss.WithGeo(cfg.Trends.Geo), googlerss.WithMetrics(metricsRecorder))
		if trendsSource == nil {
			trendsSource = rss
		} else {
			trendsOpts = append(trendsOpts, collect.WithSecondarySource(rss))
		}
	}
	trendsService := collect.NewTrendsService(deps, trendsSource, trendsOpts...)

	keywordService := keywords.NewService(deps, store)

	sources := map[string]bool{
		naver.AdsSourceName: adsSource != nil,
		serpapi.SourceName:  interestSource != nil,
	}

	// Create API with middleware
	apiConfig := api.APIConfig{Logger: logger}
	if flags.IsEnabled(featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.Server.RateLimit
		apiConfig.RateWindow = cfg.Server.RateWindow
	}
	if recorder != nil {
		apiConfig.MetricsHandler = recorder.Handler()
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	var related interfaces.RelatedKeywordSource
	var keywordMetrics interfaces.MetricsSource
	if adsSource != nil {
		related = adsSource
		keywordMetrics = adsSource
	}

	handlers.NewHealthHandler(store, sources, flags).RegisterRoutes(humaAPI)
	handlers.NewLongtailHandler(longtailService, pool).RegisterRoutes(humaAPI)
	handlers.NewNaverHandler(keywordMetrics, related).RegisterRoutes(humaAPI)
	handlers.NewTrendsHandler(trendsService).RegisterRoutes(humaAPI)
	handlers.NewCollectHandler(collectService, sources).RegisterRoutes(humaAPI)
	handlers.NewKeywordsHandler(keywordService).RegisterRoutes(humaAPI)

	// Long-tail batches can spend several seconds per seed on enrichment delays
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
			"sources": sources,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := pool.Stop(); err != nil {
		logger.Error("Failed to stop worker pool", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// newCache builds the trends snapshot cache, falling back to memory when Redis is unreachable
func newCache(cfg *config.Config, logger interfaces.Logger) interfaces.Cache {
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache()
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache
	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache()
	}
}

// newStore opens the configured keyword store and returns its close function
func newStore(cfg *config.Config, logger interfaces.Logger) (keywordStore, func()) {
	switch cfg.Store.Type {
	case "postgres":
		if err := postgres.RunMigrations(cfg.Store.DatabaseURL); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		store, err := postgres.NewStore(ctx, cfg.Store.DatabaseURL, logger)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		logger.Info("Using Postgres keyword store", nil)
		return store, store.Close
	case "memory":
		logger.Warn("Using in-memory keyword store; data is lost on restart", nil)
		return memstore.NewStore(), func() {}
	default:
		store, err := sqlite.NewStore(cfg.Store.SQLitePath, logger)
		if err != nil {
			log.Fatalf("Failed to open SQLite store: %v", err)
		}
		logger.Info("Using SQLite keyword store", map[string]interface{}{
			"path": cfg.Store.SQLitePath,
		})
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close SQLite store", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

func init() {
	fmt.Println(`
  _  __                                _          _    ____ ___
 | |/ /___ _   ___      _____  _ __ __| |___     / \  |  _ \_ _|
 | ' // _ \ | | \ \ /\ / / _ \| '__/ _' / __|   / _ \ | |_) | |
 | . \  __/ |_| |\ V  V / (_) | | | (_| \__ \  / ___ \|  __/| |
 |_|\_\___|\__, | \_/\_/ \___/|_|  \__,_|___/ /_/   \_\_|  |___|
           |___/
	`)
}
