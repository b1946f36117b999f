package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds all dashboard configuration.
// Supports environment variables with sensible defaults.
//
// Environment Variables:
// Backend API:
// - WEATHERDASH_API_URL: base URL of the analysis backend (default: http://localhost:8000)
// - WEATHERDASH_API_TIMEOUT: request timeout in seconds (default: 30)
//
// Polling:
// - WEATHERDASH_POLL_INTERVAL: job-list refresh period in seconds (default: 10)
// - WEATHERDASH_POLL_MODE: "single" or "until-terminal" (default: single)
// - WEATHERDASH_POLL_MAX_ATTEMPTS: attempt budget for until-terminal mode (default: 30)
//
// Logging:
// - LOG_LEVEL: DEBUG, INFO, WARN, ERROR or FATAL (default: INFO)
// - LOG_FILE: optional log file path; empty logs to stdout
type Config struct {
	API  APIConfig  `json:"api"`
	Poll PollConfig `json:"poll"`
	Log  LogConfig  `json:"log"`
}

// APIConfig points the client at the analysis backend.
type APIConfig struct {
	BaseURL string `json:"base_url" validate:"required,url"`
	Timeout int    `json:"timeout" validate:"gt=0"`
}

// PollConfig controls the background job-list refresh and how a freshly
// created job is followed.
type PollConfig struct {
	IntervalSeconds int    `json:"interval_seconds" validate:"gt=0"`
	Mode            string `json:"mode" validate:"oneof=single until-terminal"`
	MaxAttempts     int    `json:"max_attempts" validate:"gt=0"`
}

// Interval renders the refresh period for the scheduler.
func (p PollConfig) Interval() string {
	return fmt.Sprintf("%ds", p.IntervalSeconds)
}

// LogConfig controls log verbosity and destination.
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

// Option is a function type for configuring Config
type Option func(*Config)

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		if baseURL != "" {
			c.API.BaseURL = baseURL
		}
	}
}

func WithPollMode(mode string) Option {
	return func(c *Config) {
		if mode != "" {
			c.Poll.Mode = mode
		}
	}
}

// NewFromEnv creates a new Config instance with values from environment
// variables and options.
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		API: APIConfig{
			BaseURL: getEnvString("WEATHERDASH_API_URL", "http://localhost:8000"),
			Timeout: getEnvInt("WEATHERDASH_API_TIMEOUT", 30),
		},
		Poll: PollConfig{
			IntervalSeconds: getEnvInt("WEATHERDASH_POLL_INTERVAL", 10),
			Mode:            getEnvString("WEATHERDASH_POLL_MODE", "single"),
			MaxAttempts:     getEnvInt("WEATHERDASH_POLL_MAX_ATTEMPTS", 30),
		},
		Log: LogConfig{
			Level: getEnvString("LOG_LEVEL", "INFO"),
			File:  getEnvString("LOG_FILE", ""),
		},
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
