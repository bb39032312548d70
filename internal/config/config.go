package config

import (
	"os"
	"strconv"
	"time"

	"modeladvisor/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database   DatabaseConfig
	Classifier ClassifierConfig
	Server     ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ClassifierConfig holds settings for the external AI task classifier.
// The classifier is optional: with no API key the service runs on the
// keyword heuristic alone.
type ClassifierConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	cfg := &Config{
		Database: DatabaseConfig{
			URL:     dbURL,
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Classifier: ClassifierConfig{
			APIKey:  os.Getenv("CLASSIFIER_API_KEY"),
			BaseURL: getEnvOrDefault("CLASSIFIER_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnvOrDefault("CLASSIFIER_MODEL", "gpt-4o-mini"),
			Timeout: getEnvDurationOrDefault("CLASSIFIER_TIMEOUT", 3500*time.Millisecond),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if cfg.Classifier.Timeout <= 0 {
		return nil, errors.ConfigInvalid("CLASSIFIER_TIMEOUT must be positive")
	}

	return cfg, nil
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
