package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ledgerimport/database"
)

// LoadMode controls how the three datasets are committed
type LoadMode string

const (
	// LoadModeAtomic commits accounts, clients and transactions in one transaction
	LoadModeAtomic LoadMode = "atomic"
	// LoadModePhased commits each dataset in its own transaction
	LoadModePhased LoadMode = "phased"
)

// Config holds all application configuration
type Config struct {
	// Remote API configuration
	AdminAPIKey string
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Database configuration
	DBHost     string
	DBPort     int
	DBName     string
	DBUsername string
	DBPassword string
	DBSSLMode  string

	// Import configuration
	MaxTransactionID int64         // Transactions with a larger id are dropped
	FetchRetryDelay  time.Duration // Wait between attempts for a failed page
	FetchMaxRetries  uint64        // Retries per page before giving up
	LoadMode         LoadMode

	// Logging
	LogLevel string

	// Environment
	Environment string // "development" or "production"
}

// GetDatabaseURL builds the connection URL from the individual DB_* settings
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(database.URLParams{
		Host:     c.DBHost,
		Port:     c.DBPort,
		Username: c.DBUsername,
		Password: c.DBPassword,
		Database: c.DBName,
		SSLMode:  c.DBSSLMode,
	})
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		// Remote API
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
		APIBaseURL:  strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
		HTTPTimeout: 60 * time.Second,

		// Database
		DBHost:     os.Getenv("DB_HOST"),
		DBName:     os.Getenv("DB_NAME"),
		DBUsername: os.Getenv("DB_USERNAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),

		// Import settings with defaults
		MaxTransactionID: 30000,
		FetchRetryDelay:  5 * time.Second,
		FetchMaxRetries:  10,
		LoadMode:         LoadMode(getEnvWithDefault("LOAD_MODE", string(LoadModeAtomic))),

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	// Validate required configuration
	required := []struct {
		name  string
		value string
	}{
		{"ADMIN_API_KEY", config.AdminAPIKey},
		{"API_BASE_URL", config.APIBaseURL},
		{"DB_HOST", config.DBHost},
		{"DB_NAME", config.DBName},
		{"DB_PASSWORD", config.DBPassword},
		{"DB_USERNAME", config.DBUsername},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("%s is required", r.name)
		}
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	parsedPort, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("DB_PORT must be an integer: %w", err)
	}
	config.DBPort = parsedPort

	// Override defaults if environment variables are set
	if maxID := os.Getenv("MAX_TRANSACTION_ID"); maxID != "" {
		parsed, err := strconv.ParseInt(maxID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MAX_TRANSACTION_ID must be an integer: %w", err)
		}
		config.MaxTransactionID = parsed
	}
	if delay := os.Getenv("FETCH_RETRY_DELAY"); delay != "" {
		parsed, err := time.ParseDuration(delay)
		if err != nil {
			return nil, fmt.Errorf("FETCH_RETRY_DELAY must be a duration: %w", err)
		}
		config.FetchRetryDelay = parsed
	}
	if retries := os.Getenv("FETCH_MAX_RETRIES"); retries != "" {
		parsed, err := strconv.ParseUint(retries, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("FETCH_MAX_RETRIES must be a non-negative integer: %w", err)
		}
		config.FetchMaxRetries = parsed
	}
	if timeout := os.Getenv("HTTP_TIMEOUT"); timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("HTTP_TIMEOUT must be a duration: %w", err)
		}
		config.HTTPTimeout = parsed
	}

	switch config.LoadMode {
	case LoadModeAtomic, LoadModePhased:
	default:
		return nil, fmt.Errorf("LOAD_MODE must be %q or %q, got %q", LoadModeAtomic, LoadModePhased, config.LoadMode)
	}

	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
