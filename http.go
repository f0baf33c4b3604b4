package posthog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// userAgent identifies the SDK in capture requests.
const userAgent = "posthog-go/1.0.0"

// httpClient handles HTTP requests to the ingestion endpoint.
// It performs exactly one request per call; retry policy is the caller's.
type httpClient struct {
	client *http.Client
	debug  bool
	logger Logger
	slog   StructuredLogger
}

// newHTTPClient creates a new HTTP client from the resolved config.
func newHTTPClient(cfg *Config) *httpClient {
	return &httpClient{
		client: cfg.HTTPClient,
		debug:  cfg.Debug,
		logger: cfg.Logger,
		slog:   cfg.StructuredLogger,
	}
}

// post marshals body and issues a single POST to the given URL.
// Error mapping:
//   - marshal failure -> *EncodingError
//   - network/connection failure -> *TransportError
//   - non-2xx response -> *APIError with status and body
func (h *httpClient) post(ctx context.Context, url string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &EncodingError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	h.log("POST %s (%d bytes)", url, len(payload))

	resp, err := h.client.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	h.log("capture accepted (status %d)", resp.StatusCode)
	return nil
}

// log emits a debug message if debug logging is enabled.
func (h *httpClient) log(format string, v ...any) {
	if !h.debug {
		return
	}
	if h.slog != nil {
		h.slog.Debug(fmt.Sprintf(format, v...))
	} else if h.logger != nil {
		h.logger.Printf(format, v...)
	}
}
