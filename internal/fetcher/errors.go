package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorType represents the category of error that occurred during a fetch operation
type ErrorType string

const (
	// ErrorTypeNetwork indicates a network-level error (connection refused, DNS, etc.)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeTimeout indicates the request timed out
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeParse indicates the response was received but its shape did not match expectations
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeRateLimit indicates the request was rejected due to rate limiting (HTTP 429)
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeServer indicates a server error (HTTP 5xx) or a provider-level rejection
	ErrorTypeServer ErrorType = "server"
	// ErrorTypeUnavailable indicates a precondition was not met (no credential configured).
	// This is an expected state, not a failure.
	ErrorTypeUnavailable ErrorType = "unavailable"
)

// ErrUnavailable is returned by credentialed fetchers when their credential
// is not configured. Callers treat it as "skip this cycle", not as a failure.
var ErrUnavailable = &FetchError{
	Type:    ErrorTypeUnavailable,
	Message: "credential not configured",
}

// FetchError represents a structured error from a fetch operation
type FetchError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// IsUnavailable reports whether err is the expected no-credential outcome.
func IsUnavailable(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Type == ErrorTypeUnavailable
}

// NewNetworkError creates a network error
func NewNetworkError(cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeNetwork,
		Message: "network request failed",
		Cause:   cause,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeTimeout,
		Message: "request timed out",
		Cause:   cause,
	}
}

// NewParseError creates a parse error for a malformed or unexpected response
func NewParseError(message string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeParse,
		Message: message,
	}
}

// WrapTransportError maps a transport-level error (returned by the HTTP
// client before any response was received) to a timeout or network error
func WrapTransportError(err error) *FetchError {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return NewTimeoutError(err)
	}
	return NewNetworkError(err)
}

// NewStatusError classifies a non-success HTTP status code
func NewStatusError(statusCode int) *FetchError {
	switch {
	case statusCode == 429:
		return &FetchError{
			Type:       ErrorTypeRateLimit,
			StatusCode: statusCode,
			Message:    "rate limit exceeded",
		}
	case statusCode >= 500:
		return &FetchError{
			Type:       ErrorTypeServer,
			StatusCode: statusCode,
			Message:    "server returned an error",
		}
	default:
		return &FetchError{
			Type:       ErrorTypeServer,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("request rejected: HTTP %d", statusCode),
		}
	}
}
