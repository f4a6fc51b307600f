package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefly/internal/app/api/provider"
	apperrors "briefly/internal/app/errors"
)

func TestFromDomainError(t *testing.T) {
	attempts := []provider.FallbackAttempt{{Provider: "groq-llama", ErrorKind: provider.ErrorKindRateLimited}}

	tests := []struct {
		name       string
		err        error
		wantKind   ErrorKind
		wantStatus int
		wantMapped bool
	}{
		{"api error passes through", NewNotFoundError("provider"), KindNotFound, http.StatusNotFound, true},
		{"no provider", &provider.NoProviderConfiguredError{Operation: provider.OperationSummarize}, KindServiceUnavailable, http.StatusServiceUnavailable, true},
		{"all failed", &provider.AllProvidersFailedError{Operation: provider.OperationSummarize, Attempts: attempts}, KindUpstreamFailure, http.StatusBadGateway, true},
		{"wrapped all failed", fmt.Errorf("summarize: %w", &provider.AllProvidersFailedError{Attempts: attempts}), KindUpstreamFailure, http.StatusBadGateway, true},
		{"aborted", &provider.ChainAbortedError{Operation: provider.OperationTranscribe, Err: context.DeadlineExceeded}, KindTimeout, http.StatusGatewayTimeout, true},
		{"deadline", context.DeadlineExceeded, KindTimeout, http.StatusGatewayTimeout, true},
		{"empty content", apperrors.ErrEmptyContent, KindBadRequest, http.StatusBadRequest, true},
		{"unsupported document", apperrors.Wrap(apperrors.ErrUnsupportedDocument, "slides.pptx"), KindBadRequest, http.StatusBadRequest, true},
		{"too large", apperrors.ErrPayloadTooLarge, KindPayloadTooLarge, http.StatusRequestEntityTooLarge, true},
		{"unknown", stderrors.New("boom"), "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr, ok := FromDomainError(tt.err)
			require.Equal(t, tt.wantMapped, ok)
			if !ok {
				assert.Nil(t, apiErr)
				return
			}
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.wantStatus, apiErr.HTTPStatus())
		})
	}
}

func TestFromDomainError_CarriesAttempts(t *testing.T) {
	attempts := []provider.FallbackAttempt{
		{Provider: "elevenlabs-scribe", ErrorKind: provider.ErrorKindUnauthenticated},
		{Provider: "groq-whisper", ErrorKind: provider.ErrorKindTimeout},
	}

	apiErr, ok := FromDomainError(&provider.AllProvidersFailedError{Operation: provider.OperationTranscribe, Attempts: attempts})
	require.True(t, ok)
	assert.Equal(t, attempts, apiErr.Attempts)
	assert.Equal(t, "all_providers_failed", apiErr.Code)
	assert.Equal(t, "All transcribe providers failed", apiErr.Message)
}

func TestNewPayloadTooLargeError(t *testing.T) {
	apiErr := NewPayloadTooLargeError(50 << 20)
	assert.Equal(t, "File too large. Maximum size is 50MB", apiErr.Message)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.HTTPStatus())
}
