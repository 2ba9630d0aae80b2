package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	TED    TEDConfig    `mapstructure:"ted"    validate:"required"`
	Worker WorkerConfig `mapstructure:"worker" validate:"required"`
}

// ServerConfig contains all HTTP-server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// TEDConfig contains the settings for the remote TED notice catalog.
type TEDConfig struct {
	// BaseURL is the TED v3 API root, without a trailing slash.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// TimeoutSeconds bounds every remote call; on expiry the call fails
	// rather than hanging.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0,lte=300"`

	// APIKey is the optional TED API key. Without one the public rate
	// limits apply.
	APIKey string `mapstructure:"api_key"`
}

// Timeout returns the request timeout as a duration.
func (c TEDConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WorkerConfig contains the background task processing settings.
type WorkerConfig struct {
	// Count determines how many concurrent workers drain the task queue.
	Count int `mapstructure:"count" validate:"required,gt=0,lte=64"`

	// QueueSize is the buffer size of the in-memory task queue.
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`
}
