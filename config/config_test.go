package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "secret")
	t.Setenv("API_BASE_URL", "http://api.example.com/")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "ledger")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USERNAME", "importer")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.AdminAPIKey)
	assert.Equal(t, "http://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, int64(30000), cfg.MaxTransactionID)
	assert.Equal(t, 5*time.Second, cfg.FetchRetryDelay)
	assert.Equal(t, uint64(10), cfg.FetchMaxRetries)
	assert.Equal(t, LoadModeAtomic, cfg.LoadMode)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "postgres://importer:pw@localhost:5432/ledger?sslmode=disable", cfg.GetDatabaseURL())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_TRANSACTION_ID", "500")
	t.Setenv("FETCH_RETRY_DELAY", "250ms")
	t.Setenv("FETCH_MAX_RETRIES", "3")
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("LOAD_MODE", "phased")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(500), cfg.MaxTransactionID)
	assert.Equal(t, 250*time.Millisecond, cfg.FetchRetryDelay)
	assert.Equal(t, uint64(3), cfg.FetchMaxRetries)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, LoadModePhased, cfg.LoadMode)
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, name := range []string{"ADMIN_API_KEY", "API_BASE_URL", "DB_HOST", "DB_NAME", "DB_PASSWORD", "DB_PORT", "DB_USERNAME"} {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(name, "")

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"DB_PORT", "five"},
		{"MAX_TRANSACTION_ID", "lots"},
		{"FETCH_RETRY_DELAY", "5"},
		{"FETCH_MAX_RETRIES", "-1"},
		{"LOAD_MODE", "eventual"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
