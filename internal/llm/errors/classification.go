package errors

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// ClassifyStatusCode maps an HTTP status code (plus an optional provider
// error code string) to an ErrorType. Providers share the same status
// semantics closely enough that one table serves all adapters.
func ClassifyStatusCode(statusCode int, code string) ErrorType {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrorTypeAuth
	case http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrorTypeTimeout
	}
	if statusCode >= 500 {
		return ErrorTypeProvider
	}

	switch strings.ToLower(code) {
	case "rate_limit_error", "rate_limit_exceeded", "insufficient_quota":
		return ErrorTypeRateLimit
	case "authentication_error", "invalid_api_key", "permission_error":
		return ErrorTypeAuth
	case "overloaded_error":
		return ErrorTypeProvider
	}

	return ErrorTypeUnknown
}

// ClassifyTransportError converts low-level call failures into a
// ProviderError with an appropriate type. Context deadline expiry becomes a
// timeout; net errors become network failures; anything already classified
// passes through unchanged.
func ClassifyTransportError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return err
	}

	errType := ErrorTypeUnknown
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		errType = ErrorTypeTimeout
	case isNetError(err):
		errType = ErrorTypeNetwork
	case strings.Contains(strings.ToLower(err.Error()), "timeout"):
		errType = ErrorTypeTimeout
	}

	return &ProviderError{
		Provider: provider,
		Message:  err.Error(),
		Type:     errType,
	}
}

func isNetError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}
