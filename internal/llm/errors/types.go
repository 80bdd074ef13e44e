// Package errors defines the error taxonomy for model-caller operations.
// Every provider failure is classified into an ErrorType that determines
// whether the retry middleware may attempt the call again and with what
// backoff strategy.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType categorizes model invocation failures for retry classification.
type ErrorType string

const (
	// ErrorTypeTimeout indicates request timeout or deadline exceeded (retryable).
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeRateLimit indicates rate limit exceeded, retry with backoff (retryable).
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeNetwork indicates network connectivity issues (retryable).
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeProvider indicates provider service unavailable (retryable).
	ErrorTypeProvider ErrorType = "provider_unavailable"

	// ErrorTypeInvalidResponse indicates the provider returned output that
	// failed JSON parsing or schema validation. Retryable a bounded number
	// of times, then fatal for the call.
	ErrorTypeInvalidResponse ErrorType = "invalid_response"

	// ErrorTypeAuth indicates authentication or configuration failure
	// (never retried).
	ErrorTypeAuth ErrorType = "auth_or_config"

	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = "unknown"
)

// Common model-caller errors for consistent error handling.
var (
	// ErrUnknownProvider indicates an unknown or unsupported provider.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrUnknownModel indicates a model name no provider claims.
	ErrUnknownModel = errors.New("unknown model")

	// ErrInvalidResponse indicates the provider returned an invalid response.
	ErrInvalidResponse = errors.New("invalid provider response")

	// ErrSchemaValidation indicates the response violated the expected schema.
	ErrSchemaValidation = errors.New("response schema validation failed")

	// ErrMaxRetriesExceeded indicates maximum retry attempts exceeded.
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded")

	// ErrMissingAPIKey indicates a provider was configured without credentials.
	ErrMissingAPIKey = errors.New("missing API key")
)

// ProviderError captures structured error responses from model providers.
// Includes HTTP status codes, provider error codes, and retry timing to
// enable appropriate retry behavior and diagnosis.
type ProviderError struct {
	Provider   string    `json:"provider"`    // Provider name
	StatusCode int       `json:"status_code"` // HTTP status code, when known
	Message    string    `json:"message"`     // Error message
	Code       string    `json:"code"`        // Provider error code
	Type       ErrorType `json:"type"`        // Classified error type
	RetryAfter int       `json:"retry_after"` // Retry-After value in seconds
}

// Error returns the formatted provider error with status code context.
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

// IsRetryable reports whether the error type warrants a retry attempt.
// Invalid responses are retryable too, but under a separate bounded budget
// enforced by the retry middleware.
func (e *ProviderError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeTimeout, ErrorTypeRateLimit, ErrorTypeNetwork, ErrorTypeProvider, ErrorTypeInvalidResponse:
		return true
	default:
		return false
	}
}

// GetRetryAfter returns the provider-specified retry delay, if any.
func (e *ProviderError) GetRetryAfter() time.Duration {
	if e.RetryAfter > 0 {
		return time.Duration(e.RetryAfter) * time.Second
	}
	return 0
}

// IsRetryableError reports whether an arbitrary error warrants a retry.
// Examines typed errors first, then falls back to status-code inspection.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.IsRetryable()
	}

	if errors.Is(err, ErrInvalidResponse) || errors.Is(err, ErrSchemaValidation) {
		return true
	}

	type statusCoder interface {
		StatusCode() int
	}
	if sc, ok := err.(statusCoder); ok {
		code := sc.StatusCode()
		return code == http.StatusTooManyRequests ||
			code == http.StatusRequestTimeout ||
			code == http.StatusGatewayTimeout ||
			code >= 500
	}

	// Conservative default: avoid retry loops for unknown errors.
	return false
}

// IsInvalidResponseError reports whether the error is a bounded-retry
// invalid-response failure rather than a transient transport failure.
func IsInvalidResponseError(err error) bool {
	if err == nil {
		return false
	}
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Type == ErrorTypeInvalidResponse
	}
	return errors.Is(err, ErrInvalidResponse) || errors.Is(err, ErrSchemaValidation)
}

// GetRetryAfter extracts a retry-after duration from an error chain,
// or zero when no guidance is available.
func GetRetryAfter(err error) time.Duration {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.GetRetryAfter()
	}
	return 0
}
