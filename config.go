package posthog

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Environment variable names for configuration.
const (
	// EnvAPIKey is the environment variable for the PostHog project API key.
	EnvAPIKey = "POSTHOG_API_KEY"
	// EnvEndpoint is the environment variable for a custom ingestion endpoint.
	EnvEndpoint = "POSTHOG_ENDPOINT"
	// EnvServiceAccount is the environment variable naming the Google
	// service-account credentials file used for secret manager resolution.
	EnvServiceAccount = "SERVICE_ACCOUNT"
	// EnvDebug is the environment variable to enable debug mode.
	EnvDebug = "POSTHOG_DEBUG"
)

// Default configuration values.
const (
	// DefaultEndpoint is the PostHog cloud ingestion endpoint.
	DefaultEndpoint = "https://app.posthog.com/"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 8 * time.Second

	// DefaultMaxIdleConns is the default maximum number of idle connections.
	DefaultMaxIdleConns = 100

	// DefaultIdleConnTimeout is the default timeout for idle connections.
	DefaultIdleConnTimeout = 90 * time.Second
)

// capturePath is the ingestion path for single-event capture, relative to
// the endpoint.
const capturePath = "capture/"

// Config holds the configuration for the PostHog client.
type Config struct {
	// APIKey is the PostHog project API key (required).
	APIKey string

	// Endpoint is the base URL of the ingestion endpoint.
	// Defaults to DefaultEndpoint if not set.
	Endpoint string

	// HTTPClient is the HTTP client to use for requests.
	// If not set, a default client with sensible timeouts is used.
	HTTPClient *http.Client

	// Timeout is the request timeout.
	// Defaults to 8 seconds if not set.
	Timeout time.Duration

	// Debug enables debug logging of capture requests.
	Debug bool

	// Logger is used for SDK logging (printf-style).
	// If nil, logging is disabled unless Debug is true.
	Logger Logger

	// StructuredLogger is used for structured SDK logging.
	// If set, this takes precedence over Logger.
	// Compatible with slog.Logger via NewSlogAdapter().
	StructuredLogger StructuredLogger

	// MaxIdleConns controls the maximum number of idle connections.
	// Defaults to 100 if not set.
	MaxIdleConns int

	// IdleConnTimeout is how long idle connections are kept.
	// Defaults to 90 seconds if not set.
	IdleConnTimeout time.Duration
}

// String returns a string representation of the config with a masked key.
// This is safe to use in logs and debug output.
func (c *Config) String() string {
	return fmt.Sprintf("Config{APIKey: %q, Endpoint: %q, Timeout: %v}",
		MaskCredential(c.APIKey), c.Endpoint, c.Timeout)
}

// applyDefaults sets default values for unset configuration options.
func (c *Config) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}

	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}

	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = DefaultIdleConnTimeout
	}

	if c.Debug && c.Logger == nil && c.StructuredLogger == nil {
		c.Logger = defaultStderrLogger
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:    c.MaxIdleConns,
				IdleConnTimeout: c.IdleConnTimeout,
			},
		}
	}
}

// validate checks that the configuration is valid.
func (c *Config) validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Endpoint == "" {
		return ErrMissingEndpoint
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("posthog: invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("posthog: invalid endpoint scheme %q", u.Scheme)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("posthog: timeout cannot be negative")
	}

	return nil
}

// captureURL returns the full capture URL for the configured endpoint.
func (c *Config) captureURL() string {
	return strings.TrimSuffix(c.Endpoint, "/") + "/" + capturePath
}

// DefaultConfig returns a production-ready configuration for the given key.
//
// Example:
//
//	cfg := posthog.DefaultConfig("phc-xxx")
//	client, err := posthog.NewWithConfig(cfg)
func DefaultConfig(apiKey string) *Config {
	return &Config{
		APIKey:   apiKey,
		Endpoint: DefaultEndpoint,
	}
}

// DevelopmentConfig returns a configuration suitable for development, with
// debug logging enabled and a shorter request timeout for fast feedback.
func DevelopmentConfig(apiKey string) *Config {
	return &Config{
		APIKey:   apiKey,
		Endpoint: DefaultEndpoint,
		Debug:    true,
		Timeout:  2 * time.Second,
	}
}
