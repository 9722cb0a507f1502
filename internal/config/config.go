// Package config provides configuration management for Curator.
// It loads settings from environment variables with the CURATOR_ prefix
// and provides sensible defaults for all configuration options.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration settings for the Curator application.
type Config struct {
	Storage StorageConfig
	Review  ReviewConfig
}

// StorageConfig contains database and storage configuration.
type StorageConfig struct {
	// Engine is the storage engine type: "sqlite" or "postgres" (default: sqlite).
	Engine string

	// DataPath is the path to the data directory for SQLite (default: ./data).
	DataPath string

	// PostgresDSN is the PostgreSQL connection string, used when Engine is
	// "postgres".
	PostgresDSN string
}

// ReviewConfig contains review queue and reschedule settings.
type ReviewConfig struct {
	// QueueLimit is the maximum number of items returned in a review queue
	// (default: 20, 0 = unlimited).
	QueueLimit int

	// RescheduleRate is the maximum number of repair writes per second
	// during a bulk reschedule (default: 50, 0 = unthrottled).
	RescheduleRate float64

	// RescheduleBurst is the limiter burst size (default: 10).
	RescheduleBurst int
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. All environment variables use the CURATOR_ prefix.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			Engine:      getEnv("CURATOR_STORAGE_ENGINE", "sqlite"),
			DataPath:    getEnv("CURATOR_DATA_PATH", "./data"),
			PostgresDSN: getEnv("CURATOR_POSTGRES_DSN", ""),
		},
		Review: ReviewConfig{
			QueueLimit:      getEnvInt("CURATOR_QUEUE_LIMIT", 20),
			RescheduleRate:  getEnvFloat("CURATOR_RESCHEDULE_RATE", 50),
			RescheduleBurst: getEnvInt("CURATOR_RESCHEDULE_BURST", 10),
		},
	}

	switch cfg.Storage.Engine {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("config: unknown storage engine %q", cfg.Storage.Engine)
	}
	if cfg.Storage.Engine == "postgres" && cfg.Storage.PostgresDSN == "" {
		return nil, fmt.Errorf("config: CURATOR_POSTGRES_DSN is required for the postgres engine")
	}

	return cfg, nil
}

// DatabasePath returns the SQLite database file path under the data directory.
func (c *Config) DatabasePath() string {
	return c.Storage.DataPath + "/curator.db"
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value.
// If the environment variable exists but cannot be parsed as an integer,
// it returns the default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default value.
// If the environment variable exists but cannot be parsed, it returns the
// default value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
