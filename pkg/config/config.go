// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration for server, cache, storage, upstream credentials and logging

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Store selects and configures the keyword store
	Store StoreConfig

	// Naver holds the paid-search API credentials
	Naver NaverConfig

	// Trends configures the trends providers
	Trends TrendsConfig

	// Collection tunes long-tail generation and batch collection
	Collection CollectionConfig

	// Log configures the application logger
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per RateWindow per client
	RateLimit int

	// RateWindow is the rate limit window
	RateWindow time.Duration

	// UpstreamTimeout bounds every outbound HTTP request
	UpstreamTimeout time.Duration

	// WorkerCount is the size of the batch long-tail worker pool
	WorkerCount int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key written by this service
	KeyPrefix string
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// StoreConfig selects the persistence sink
type StoreConfig struct {
	// Type is sqlite, postgres or memory
	Type string

	// SQLitePath is the database file for the sqlite store
	SQLitePath string

	// DatabaseURL is the postgres connection string
	DatabaseURL string
}

// NaverConfig holds the paid-search API credentials
type NaverConfig struct {
	APIKey     string
	SecretKey  string
	CustomerID string
}

// Configured reports whether all three credentials are present
func (n NaverConfig) Configured() bool {
	return n.APIKey != "" && n.SecretKey != "" && n.CustomerID != ""
}

// TrendsConfig configures the trends providers
type TrendsConfig struct {
	// SerpAPIKey enables the SerpAPI provider when set
	SerpAPIKey string

	// Geo is the region code sent to trends providers
	Geo string

	// CacheTTL is how long a bulk trends snapshot is served from cache
	CacheTTL time.Duration
}

// CollectionConfig tunes long-tail generation and batch collection
type CollectionConfig struct {
	// EnrichmentDelay separates consecutive metrics lookups
	EnrichmentDelay time.Duration

	// CollectDelay separates seeds during batch collection
	CollectDelay time.Duration

	// FallbackPatterns overrides the fallback suffix list
	FallbackPatterns []string
}

// LogConfig configures the application logger
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string

	// File enables rotating file output when set
	File string

	// MaxSizeMB rotates the log file at this size
	MaxSizeMB int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8000"),
			RateLimit:       getEnvAsIntOrDefault("RATE_LIMIT", 100),
			RateWindow:      getEnvAsDurationOrDefault("RATE_WINDOW", time.Minute),
			UpstreamTimeout: getEnvAsDurationOrDefault("UPSTREAM_TIMEOUT", 10*time.Second),
			WorkerCount:     getEnvAsIntOrDefault("WORKER_COUNT", 4),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "keywords:"),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
		},
		Store: StoreConfig{
			Type:        getEnvOrDefault("STORE_TYPE", "sqlite"),
			SQLitePath:  getEnvOrDefault("SQLITE_PATH", "keywords.db"),
			DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Naver: NaverConfig{
			APIKey:     os.Getenv("NAVER_API_KEY"),
			SecretKey:  os.Getenv("NAVER_SECRET_KEY"),
			CustomerID: os.Getenv("NAVER_CUSTOMER_ID"),
		},
		Trends: TrendsConfig{
			SerpAPIKey: os.Getenv("SERPAPI_KEY"),
			Geo:        getEnvOrDefault("TRENDS_GEO", "KR"),
			CacheTTL:   getEnvAsDurationOrDefault("TRENDS_CACHE_TTL", time.Hour),
		},
		Collection: CollectionConfig{
			EnrichmentDelay:  getEnvAsMillisOrDefault("ENRICHMENT_DELAY_MS", 200*time.Millisecond),
			CollectDelay:     getEnvAsMillisOrDefault("COLLECT_DELAY_MS", time.Second),
			FallbackPatterns: getEnvAsListOrDefault("FALLBACK_PATTERNS", nil),
		},
		Log: LogConfig{
			Level:     getEnvOrDefault("LOG_LEVEL", "info"),
			File:      getEnvOrDefault("LOG_FILE", ""),
			MaxSizeMB: getEnvAsIntOrDefault("LOG_MAX_SIZE_MB", 100),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("90s") or bare seconds ("90")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsMillisOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma separated value, dropping blanks
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 0 {
		return errors.New("rate limit cannot be negative")
	}

	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		return errors.New("rate window must be positive when rate limiting is on")
	}

	if c.Server.UpstreamTimeout <= 0 {
		return errors.New("upstream timeout must be positive")
	}

	if c.Server.WorkerCount < 1 {
		return errors.New("worker count must be at least 1")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	switch c.Store.Type {
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return errors.New("sqlite path cannot be empty when using sqlite store")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return errors.New("database url cannot be empty when using postgres store")
		}
	case "memory":
	default:
		return fmt.Errorf("store type must be 'sqlite', 'postgres' or 'memory', got %q", c.Store.Type)
	}

	if c.Trends.CacheTTL <= 0 {
		return errors.New("trends cache ttl must be positive")
	}

	if c.Collection.EnrichmentDelay <= 0 {
		return errors.New("enrichment delay must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	return nil
}
