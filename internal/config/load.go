package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Environment variable prefix: TEDSEARCH_SERVER_PORT, TEDSEARCH_TED_BASE_URL, ...
const envPrefix = "TEDSEARCH"

// Load reads configuration from environment variables, applies defaults and
// validates the result. Environment variables use the TEDSEARCH_ prefix with
// underscores separating nested keys. Returns a populated Config or an
// error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("ted.base_url", "https://api.ted.europa.eu/v3")
	v.SetDefault("ted.timeout_seconds", 30)
	v.SetDefault("ted.api_key", "")
	v.SetDefault("worker.count", 2)
	v.SetDefault("worker.queue_size", 100)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
