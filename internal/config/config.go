// Package config provides centralized environment-backed configuration
package config

import (
	"os"
	"strconv"

	"github.com/Priyuuuuu/smartdata-standardization/internal/errors"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Profiling ProfilingConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings.
// URL is optional; when empty the application falls back to the
// in-memory dataset store.
type DatabaseConfig struct {
	URL string
}

// StorageConfig holds uploaded file storage settings
type StorageConfig struct {
	UploadDir      string
	MaxUploadBytes int64
}

// ProfilingConfig holds background profiling settings
type ProfilingConfig struct {
	MaxConcurrent int64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	var err error
	if cfg.Server, err = loadServerConfig(); err != nil {
		return nil, errors.Wrap(err, "failed to load server config")
	}

	cfg.Database = loadDatabaseConfig()

	if cfg.Storage, err = loadStorageConfig(); err != nil {
		return nil, errors.Wrap(err, "failed to load storage config")
	}

	if cfg.Profiling, err = loadProfilingConfig(); err != nil {
		return nil, errors.Wrap(err, "failed to load profiling config")
	}

	return cfg, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := getEnvOrDefault("PORT", "8080")
	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, errors.ConfigInvalid("PORT must be a number")
	}

	return ServerConfig{Port: port}, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL: os.Getenv("DATABASE_URL"),
	}
}

func loadStorageConfig() (StorageConfig, error) {
	maxMB, err := getEnvOrDefaultInt("MAX_UPLOAD_MB", 25)
	if err != nil {
		return StorageConfig{}, err
	}
	if maxMB <= 0 {
		return StorageConfig{}, errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}

	return StorageConfig{
		UploadDir:      getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: int64(maxMB) * 1024 * 1024,
	}, nil
}

func loadProfilingConfig() (ProfilingConfig, error) {
	maxConcurrent, err := getEnvOrDefaultInt("MAX_CONCURRENT_PROFILES", 4)
	if err != nil {
		return ProfilingConfig{}, err
	}
	if maxConcurrent <= 0 {
		return ProfilingConfig{}, errors.ConfigInvalid("MAX_CONCURRENT_PROFILES must be positive")
	}

	return ProfilingConfig{MaxConcurrent: int64(maxConcurrent)}, nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a number")
	}
	return parsed, nil
}
