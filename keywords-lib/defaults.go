// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for creating default service implementations

package keywords

import (
	"os"
	"time"

	"keywords-app-api/core/interfaces"
	"keywords-app-api/infrastructure/cache/memory"
	httpInfra "keywords-app-api/infrastructure/http/standard"
	logruslogger "keywords-app-api/infrastructure/logger/logrus"
	memstore "keywords-app-api/infrastructure/storage/memory"
	"keywords-app-api/infrastructure/storage/sqlite"
)

// DefaultHTTPClient creates a default HTTP client with sensible timeouts
func DefaultHTTPClient() interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(10 * time.Second)
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultStore creates an in-memory keyword store
func DefaultStore() interfaces.KeywordStore {
	return memstore.NewStore()
}

// DefaultLogger creates a JSON logger that writes to stderr
func DefaultLogger(level string) interfaces.Logger {
	return logruslogger.NewLogger(logruslogger.Config{Level: level, Output: os.Stderr})
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return quietLogger{}
}

type quietLogger struct{}

func (quietLogger) Debug(string, map[string]interface{}) {}
func (quietLogger) Info(string, map[string]interface{})  {}
func (quietLogger) Warn(string, map[string]interface{})  {}
func (quietLogger) Error(string, map[string]interface{}) {}

// WithSQLiteStore persists keywords to a SQLite file
func WithSQLiteStore(path string) Option {
	return func(c *Config) error {
		if path == "" {
			path = "keywords.db"
		}
		store, err := sqlite.NewStore(path, c.Logger)
		if err != nil {
			return NewError(ErrorTypeConfiguration, "failed to open sqlite store").
				WithCause(err).
				WithContext("path", path)
		}
		c.Store = store
		return nil
	}
}

// WithLogging logs through logrus at the given level
func WithLogging(level string) Option {
	return func(c *Config) error {
		c.Logger = DefaultLogger(level)
		return nil
	}
}

// WithTimeout creates an HTTP client with a custom timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return NewError(ErrorTypeValidation, "timeout must be positive")
		}
		c.HTTPClient = httpInfra.NewStandardHTTPClient(timeout)
		return nil
	}
}
