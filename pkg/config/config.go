// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	// Logging
	LogLevel  string
	LogFormat string

	// Analysis guard: rows beyond this are not scanned (0 = unbounded)
	MaxRows int

	// Optional Postgres DSN; persistence is disabled when empty
	DatabaseURL string

	// Batch processing
	WorkerPoolSize int // 0 means use runtime.NumCPU()
}

// Load reads configuration from the environment, honoring a local .env
// file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		MaxRows:        getEnvAsInt("MAX_ROWS", 0),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		WorkerPoolSize: getEnvAsInt("WORKER_POOL_SIZE", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.MaxRows < 0 {
		return errors.New("MAX_ROWS cannot be negative")
	}
	if c.WorkerPoolSize < 0 {
		return errors.New("WORKER_POOL_SIZE cannot be negative")
	}
	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
