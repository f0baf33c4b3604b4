package posthog

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of error for logging and handling.
type ErrorCode string

// Error codes for categorization.
const (
	ErrCodeConfig     ErrorCode = "CONFIG"     // Credential resolution errors
	ErrCodeValidation ErrorCode = "VALIDATION" // Event validation errors
	ErrCodeEncoding   ErrorCode = "ENCODING"   // Payload serialization errors
	ErrCodeNetwork    ErrorCode = "NETWORK"    // Network/connection errors
	ErrCodeAPI        ErrorCode = "API"        // Ingestion endpoint rejections
)

// Sentinel errors for configuration and argument validation.
var (
	ErrMissingAPIKey   = errors.New("posthog: API key is required")
	ErrMissingEndpoint = errors.New("posthog: endpoint is required")
	ErrNilConfig       = errors.New("posthog: config cannot be nil")
	ErrNilEvent        = errors.New("posthog: event cannot be nil")
)

// CodedError is an interface for errors that carry an error code.
// All typed errors in this SDK implement it.
type CodedError interface {
	error

	// Code returns a machine-readable error code for categorization.
	Code() ErrorCode
}

// ConfigErrorKind identifies which credential-resolution step failed.
type ConfigErrorKind string

// Config error kinds.
const (
	// ConfigMissingEnv means a required environment variable was unset or empty.
	ConfigMissingEnv ConfigErrorKind = "missing_env"
	// ConfigSecretFetch means the secret manager auth or fetch failed.
	ConfigSecretFetch ConfigErrorKind = "secret_fetch"
	// ConfigFile means the credentials file could not be read or parsed.
	ConfigFile ConfigErrorKind = "file"
)

// ConfigError represents a credential-resolution failure.
// Use Kind to distinguish a missing environment variable from a failed
// secret-manager fetch:
//
//	var cfgErr *posthog.ConfigError
//	if errors.As(err, &cfgErr) && cfgErr.Kind == posthog.ConfigMissingEnv {
//	    // fall back or prompt for the key
//	}
type ConfigError struct {
	Kind ConfigErrorKind
	Var  string // environment variable name, for ConfigMissingEnv
	Err  error  // underlying error, if any
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch e.Kind {
	case ConfigMissingEnv:
		return fmt.Sprintf("posthog: %s environment variable is required", e.Var)
	case ConfigSecretFetch:
		if e.Err != nil {
			return fmt.Sprintf("posthog: secret manager fetch failed: %v", e.Err)
		}
		return "posthog: secret manager fetch failed"
	case ConfigFile:
		if e.Err != nil {
			return fmt.Sprintf("posthog: credentials file error: %v", e.Err)
		}
		return "posthog: credentials file error"
	}
	if e.Err != nil {
		return fmt.Sprintf("posthog: configuration error: %v", e.Err)
	}
	return "posthog: configuration error"
}

// Unwrap returns the underlying error for error chain support.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Code returns the error code for the configuration error.
func (e *ConfigError) Code() ErrorCode {
	return ErrCodeConfig
}

// Ensure ConfigError implements CodedError.
var _ CodedError = (*ConfigError)(nil)

// APIError represents a non-2xx response from the ingestion endpoint.
// It supports comparison via errors.Is, matching on status code:
//
//	if errors.Is(err, posthog.ErrUnauthorized) { ... }
type APIError struct {
	StatusCode int
	Body       string
}

// Sentinel APIError values for use with errors.Is().
var (
	ErrBadRequest   = &APIError{StatusCode: 400}
	ErrUnauthorized = &APIError{StatusCode: 401}
	ErrRateLimited  = &APIError{StatusCode: 429}
)

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("posthog: capture rejected (status %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("posthog: capture rejected (status %d)", e.StatusCode)
}

// Is implements error comparison for errors.Is(), matching on status code.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// IsRateLimited returns true if the error is a 429 Too Many Requests error.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsServerError returns true if the error is a 5xx server error.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// Code returns the error code for the API error.
func (e *APIError) Code() ErrorCode {
	return ErrCodeAPI
}

// Ensure APIError implements CodedError.
var _ CodedError = (*APIError)(nil)

// TransportError represents a network or connection failure while
// submitting an event. The request may or may not have reached the
// ingestion endpoint.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("posthog: request failed: %v", e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Code returns the error code for the transport error.
func (e *TransportError) Code() ErrorCode {
	return ErrCodeNetwork
}

// Ensure TransportError implements CodedError.
var _ CodedError = (*TransportError)(nil)

// EncodingError represents a payload serialization failure. Given the
// Event invariants this should be unreachable, but it is surfaced rather
// than swallowed.
type EncodingError struct {
	Err error
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("posthog: failed to encode event: %v", e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Code returns the error code for the encoding error.
func (e *EncodingError) Code() ErrorCode {
	return ErrCodeEncoding
}

// Ensure EncodingError implements CodedError.
var _ CodedError = (*EncodingError)(nil)

// ValidationError represents an invalid event field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("posthog: validation error for field %q: %s", e.Field, e.Message)
}

// Code returns the error code for the validation error.
func (e *ValidationError) Code() ErrorCode {
	return ErrCodeValidation
}

// Ensure ValidationError implements CodedError.
var _ CodedError = (*ValidationError)(nil)

// AsConfigError extracts a ConfigError from the error chain.
// Returns the ConfigError and true if found, nil and false otherwise.
func AsConfigError(err error) (*ConfigError, bool) {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr, true
	}
	return nil, false
}

// AsAPIError extracts an APIError from the error chain.
// Returns the APIError and true if found, nil and false otherwise.
//
// Example:
//
//	if apiErr, ok := posthog.AsAPIError(err); ok {
//	    log.Printf("rejected with status %d: %s", apiErr.StatusCode, apiErr.Body)
//	}
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// AsTransportError extracts a TransportError from the error chain.
// Returns the TransportError and true if found, nil and false otherwise.
func AsTransportError(err error) (*TransportError, bool) {
	var trErr *TransportError
	if errors.As(err, &trErr) {
		return trErr, true
	}
	return nil, false
}

// AsValidationError extracts a ValidationError from the error chain.
// Returns the ValidationError and true if found, nil and false otherwise.
func AsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr, true
	}
	return nil, false
}

// ErrorCodeOf returns the error code for an error, or "" for nil.
// Errors that do not implement CodedError map to ErrCodeNetwork for
// transport-level failures and ErrCodeConfig for the config sentinels.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var coded CodedError
	if errors.As(err, &coded) {
		return coded.Code()
	}

	switch {
	case errors.Is(err, ErrMissingAPIKey),
		errors.Is(err, ErrMissingEndpoint),
		errors.Is(err, ErrNilConfig):
		return ErrCodeConfig
	case errors.Is(err, ErrNilEvent):
		return ErrCodeValidation
	}

	return ErrCodeNetwork
}

// IsRetryable returns true if the error represents a condition a caller
// may reasonably retry: rate limiting, server errors, and transport
// failures. The client itself never retries; each capture is a single
// best-effort request, so this is advisory for callers.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.IsRateLimited() || apiErr.IsServerError()
	}
	if _, ok := AsTransportError(err); ok {
		return true
	}

	return false
}
