package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrorKind classifies why a single adapter attempt failed
type ErrorKind string

const (
	ErrorKindUnauthenticated   ErrorKind = "unauthenticated"
	ErrorKindRateLimited       ErrorKind = "rate_limited"
	ErrorKindUnsupportedInput  ErrorKind = "unsupported_input"
	ErrorKindTimeout           ErrorKind = "timeout"
	ErrorKindProviderInternal  ErrorKind = "provider_internal_error"
	ErrorKindMalformedResponse ErrorKind = "malformed_response"
)

var (
	ErrNoProviderConfigured = errors.New("no provider configured")
	ErrAllProvidersFailed   = errors.New("all providers failed")
)

// ProviderError represents a classified adapter failure
type ProviderError struct {
	Kind        ErrorKind `json:"kind"`
	Provider    string    `json:"provider"`
	StatusCode  int       `json:"status_code,omitempty"`
	Message     string    `json:"message"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Err         error     `json:"-"`
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a classified error for provider
func NewProviderError(provider string, kind ErrorKind, message string) *ProviderError {
	return &ProviderError{
		Kind:     kind,
		Provider: provider,
		Message:  message,
	}
}

// KindForStatus maps an upstream HTTP status to an ErrorKind
func KindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrorKindUnauthenticated
	case http.StatusTooManyRequests:
		return ErrorKindRateLimited
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge,
		http.StatusUnsupportedMediaType, http.StatusUnprocessableEntity:
		return ErrorKindUnsupportedInput
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrorKindTimeout
	default:
		return ErrorKindProviderInternal
	}
}

// HTTPError builds a ProviderError from a non-2xx upstream response
func HTTPError(provider string, status int, body []byte) *ProviderError {
	kind := KindForStatus(status)
	e := &ProviderError{
		Kind:       kind,
		Provider:   provider,
		StatusCode: status,
	}

	detail := strings.TrimSpace(string(body))
	if len(detail) > 300 {
		detail = detail[:300] + "..."
	}

	switch kind {
	case ErrorKindUnauthenticated:
		e.Message = "API key is invalid or missing"
		e.Suggestions = []string{"Check the provider API key in your environment or providers.yaml"}
	case ErrorKindRateLimited:
		e.Message = "rate limit exceeded"
		e.Suggestions = []string{"Wait a moment and try again"}
	case ErrorKindUnsupportedInput:
		e.Message = fmt.Sprintf("request rejected (HTTP %d): %s", status, detail)
	case ErrorKindTimeout:
		e.Message = fmt.Sprintf("upstream timed out (HTTP %d)", status)
	default:
		e.Message = fmt.Sprintf("unexpected HTTP status %d: %s", status, detail)
	}
	return e
}

// TransportError classifies an error returned before any response was read
func TransportError(ctx context.Context, provider string, err error) *ProviderError {
	kind := ErrorKindProviderInternal
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		kind = ErrorKindTimeout
	} else {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			kind = ErrorKindTimeout
		}
	}
	return &ProviderError{
		Kind:     kind,
		Provider: provider,
		Message:  "request failed",
		Err:      err,
	}
}

// MalformedError reports a response that could not be decoded or was missing fields
func MalformedError(provider string, message string, err error) *ProviderError {
	return &ProviderError{
		Kind:     ErrorKindMalformedResponse,
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}

// ClassifyError returns the ErrorKind carried by err
func ClassifyError(err error) ErrorKind {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorKindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorKindTimeout
	}
	return ErrorKindProviderInternal
}

// NoProviderConfiguredError is returned when a chain has no configured candidates
type NoProviderConfiguredError struct {
	Operation OperationKind
}

func (e *NoProviderConfiguredError) Error() string {
	return fmt.Sprintf("no provider configured for %s", e.Operation)
}

func (e *NoProviderConfiguredError) Is(target error) bool {
	return target == ErrNoProviderConfigured
}

// AllProvidersFailedError is returned when every candidate of a chain failed
type AllProvidersFailedError struct {
	Operation OperationKind
	Attempts  []FallbackAttempt
}

func (e *AllProvidersFailedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s (%s)", attempt.Provider, attempt.ErrorKind))
	}
	return fmt.Sprintf("all %d %s providers failed: %s", len(e.Attempts), e.Operation, strings.Join(parts, ", "))
}

func (e *AllProvidersFailedError) Is(target error) bool {
	return target == ErrAllProvidersFailed
}

// ChainAbortedError is returned when the caller's context ends mid-chain
type ChainAbortedError struct {
	Operation OperationKind
	Attempts  []FallbackAttempt
	Err       error
}

func (e *ChainAbortedError) Error() string {
	return fmt.Sprintf("%s chain aborted after %d attempt(s): %v", e.Operation, len(e.Attempts), e.Err)
}

func (e *ChainAbortedError) Unwrap() error {
	return e.Err
}
