package posthog

import (
	"context"
	"os"
	"strconv"
)

// Client submits analytics events to the ingestion endpoint. It is
// stateless beyond its resolved configuration and safe for concurrent
// use; Capture calls are independent single requests with no shared
// queue or counter between them.
type Client struct {
	config *Config
	http   *httpClient
}

// New creates a new client for the given project API key.
//
// Example:
//
//	client, err := posthog.New("phc-xxx",
//	    posthog.WithTimeout(5 * time.Second),
//	)
func New(apiKey string, opts ...ConfigOption) (*Client, error) {
	cfg := &Config{APIKey: apiKey}

	for _, opt := range opts {
		opt(cfg)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a new client from a Config struct. This is useful
// when you want to configure the client using a struct rather than
// functional options.
func NewWithConfig(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	// Make a copy to avoid modifying the original
	cfgCopy := *cfg

	cfgCopy.applyDefaults()

	if err := cfgCopy.validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: &cfgCopy,
		http:   newHTTPClient(&cfgCopy),
	}, nil
}

// NewWithOptions creates a new client from resolved APIOptions.
//
// Example:
//
//	api, err := posthog.Auto(ctx, "my-project", "posthog-api-key")
//	if err != nil {
//	    return err
//	}
//	client, err := posthog.NewWithOptions(api)
func NewWithOptions(api APIOptions, opts ...ConfigOption) (*Client, error) {
	cfg := &Config{
		APIKey:   api.APIKey,
		Endpoint: api.Endpoint,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return NewWithConfig(cfg)
}

// NewFromEnv creates a new client using environment variables: the
// required POSTHOG_API_KEY, the optional POSTHOG_ENDPOINT override, and
// POSTHOG_DEBUG to enable debug logging. Explicit options take
// precedence over the environment.
func NewFromEnv(opts ...ConfigOption) (*Client, error) {
	api, err := FromEnv()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:   api.APIKey,
		Endpoint: api.Endpoint,
	}
	if debug, err := strconv.ParseBool(os.Getenv(EnvDebug)); err == nil {
		cfg.Debug = debug
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return NewWithConfig(cfg)
}

// Endpoint returns the resolved ingestion endpoint.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// Capture serializes the event and submits it to the ingestion endpoint
// in a single HTTP POST. There is no retry and no buffering; the call
// returns once the endpoint has accepted or rejected the event.
//
// Error mapping: network failures return a *TransportError, non-2xx
// responses a *APIError, and serialization failures an *EncodingError.
func (c *Client) Capture(ctx context.Context, event *Event) error {
	if event == nil {
		return ErrNilEvent
	}

	req := newCaptureRequest(event, c.config.APIKey)
	return c.http.post(ctx, c.config.captureURL(), req)
}

// CaptureBatch submits events sequentially, stopping at the first
// failure. This is a convenience loop over Capture, not a batching or
// delivery-guarantee layer; events after a failure are not sent.
func (c *Client) CaptureBatch(ctx context.Context, events []*Event) error {
	for _, event := range events {
		if err := c.Capture(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
