package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"briefly/internal/app/api/provider"
	apperrors "briefly/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
	KindPayloadTooLarge    ErrorKind = "payload_too_large"
	KindUpstreamFailure    ErrorKind = "upstream_failure"
	KindTimeout            ErrorKind = "timeout"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind                  `json:"kind"`
	Message   string                     `json:"message"`
	Details   map[string]string          `json:"details,omitempty"`
	RequestID string                     `json:"request_id,omitempty"`
	Code      string                     `json:"code,omitempty"`
	Attempts  []provider.FallbackAttempt `json:"attempts,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindUpstreamFailure:
		return http.StatusBadGateway
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewPayloadTooLargeError reports an upload over limit bytes
func NewPayloadTooLargeError(limit int64) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: fmt.Sprintf("File too large. Maximum size is %dMB", limit>>20),
	}
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}

// NewUpstreamFailureError reports a chain in which every provider failed
func NewUpstreamFailureError(message string, attempts []provider.FallbackAttempt) *APIError {
	return &APIError{
		Kind:     KindUpstreamFailure,
		Message:  message,
		Attempts: attempts,
	}
}

// FromDomainError maps errors raised below the API layer to an APIError.
// The second result is false when err has no specific mapping.
func FromDomainError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}

	var noProvider *provider.NoProviderConfiguredError
	if stderrors.As(err, &noProvider) {
		apiErr := NewServiceUnavailableError(fmt.Sprintf("No %s provider is configured", noProvider.Operation))
		apiErr.Code = "no_provider_configured"
		return apiErr, true
	}

	var allFailed *provider.AllProvidersFailedError
	if stderrors.As(err, &allFailed) {
		apiErr := NewUpstreamFailureError(fmt.Sprintf("All %s providers failed", allFailed.Operation), allFailed.Attempts)
		apiErr.Code = "all_providers_failed"
		return apiErr, true
	}

	var aborted *provider.ChainAbortedError
	if stderrors.As(err, &aborted) {
		return &APIError{
			Kind:     KindTimeout,
			Message:  fmt.Sprintf("%s did not complete in time", aborted.Operation),
			Attempts: aborted.Attempts,
		}, true
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTimeout, Message: "Request timed out"}, true
	}

	switch {
	case apperrors.Is(err, apperrors.ErrEmptyContent):
		return NewBadRequestError("No content provided"), true
	case apperrors.Is(err, apperrors.ErrNoTextExtracted):
		return NewBadRequestError("No text could be extracted from the document"), true
	case apperrors.Is(err, apperrors.ErrUnsupportedDocument):
		return NewBadRequestError("Unsupported file type"), true
	case apperrors.Is(err, apperrors.ErrUnsupportedAudio):
		return NewBadRequestError("Unsupported audio format"), true
	case apperrors.Is(err, apperrors.ErrPayloadTooLarge):
		return &APIError{Kind: KindPayloadTooLarge, Message: "File too large"}, true
	}

	return nil, false
}
