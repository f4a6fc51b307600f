package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/sashabaranov/go-openai"

	"briefly/internal/app/api/provider"
)

// GroqBaseURL is Groq's OpenAI-compatible endpoint
const GroqBaseURL = "https://api.groq.com/openai/v1"

// NewClient creates a client for an OpenAI-compatible API. An empty baseURL
// keeps the OpenAI default.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}

// ClassifyError converts an error returned by go-openai into a provider error
func ClassifyError(ctx context.Context, name string, err error) *provider.ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		providerErr := provider.HTTPError(name, apiErr.HTTPStatusCode, []byte(apiErr.Message))
		providerErr.Err = err
		return providerErr
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		providerErr := provider.HTTPError(name, reqErr.HTTPStatusCode, reqErr.Body)
		providerErr.Err = err
		return providerErr
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return provider.MalformedError(name, "failed to parse API response", err)
	}

	return provider.TransportError(ctx, name, err)
}
