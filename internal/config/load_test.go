package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets environment variables for a test and returns a cleanup
// function restoring the previous values.
func setupEnv(t *testing.T, envVars map[string]string) func() {
	t.Helper()

	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	for name, value := range envVars {
		if value == "" {
			require.NoError(t, os.Unsetenv(name))
			continue
		}
		require.NoError(t, os.Setenv(name, value), "failed to set %s", name)
	}

	return func() {
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"TEDSEARCH_SERVER_PORT":         "",
		"TEDSEARCH_SERVER_LOG_LEVEL":    "",
		"TEDSEARCH_TED_BASE_URL":        "",
		"TEDSEARCH_TED_TIMEOUT_SECONDS": "",
		"TEDSEARCH_TED_API_KEY":         "",
		"TEDSEARCH_WORKER_COUNT":        "",
		"TEDSEARCH_WORKER_QUEUE_SIZE":   "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "https://api.ted.europa.eu/v3", cfg.TED.BaseURL)
	assert.Equal(t, 30, cfg.TED.TimeoutSeconds)
	assert.Empty(t, cfg.TED.APIKey)
	assert.Equal(t, 2, cfg.Worker.Count)
	assert.Equal(t, 100, cfg.Worker.QueueSize)
}

func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"TEDSEARCH_SERVER_PORT":         "9090",
		"TEDSEARCH_SERVER_LOG_LEVEL":    "debug",
		"TEDSEARCH_TED_BASE_URL":        "http://localhost:8111/v3",
		"TEDSEARCH_TED_TIMEOUT_SECONDS": "5",
		"TEDSEARCH_TED_API_KEY":         "test-api-key",
		"TEDSEARCH_WORKER_COUNT":        "4",
		"TEDSEARCH_WORKER_QUEUE_SIZE":   "16",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "http://localhost:8111/v3", cfg.TED.BaseURL)
	assert.Equal(t, 5, cfg.TED.TimeoutSeconds)
	assert.Equal(t, "test-api-key", cfg.TED.APIKey)
	assert.Equal(t, 4, cfg.Worker.Count)
	assert.Equal(t, 16, cfg.Worker.QueueSize)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "invalid log level",
			env:  map[string]string{"TEDSEARCH_SERVER_LOG_LEVEL": "verbose"},
		},
		{
			name: "port out of range",
			env:  map[string]string{"TEDSEARCH_SERVER_PORT": "70000"},
		},
		{
			name: "non URL base",
			env:  map[string]string{"TEDSEARCH_TED_BASE_URL": "not a url"},
		},
		{
			name: "zero timeout",
			env:  map[string]string{"TEDSEARCH_TED_TIMEOUT_SECONDS": "0"},
		},
		{
			name: "negative worker count",
			env:  map[string]string{"TEDSEARCH_WORKER_COUNT": "-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupEnv(t, tt.env)
			defer cleanup()

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestTEDConfigTimeout(t *testing.T) {
	cfg := TEDConfig{TimeoutSeconds: 45}
	assert.Equal(t, 45*time.Second, cfg.Timeout())
}
