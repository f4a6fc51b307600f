package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"briefly/internal/app/api/provider"
)

const (
	ProviderType   = "gemini_chat"
	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 60 * time.Second
)

const summaryPrompt = `You are a customer service analyst. Provide a concise one-line summary of this %s.
Focus on the main topic, customer concern, or outcome. Reply with the summary only.

%s`

// Config represents configuration for the Gemini summarizer
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Enabled  bool
	Priority int
	Timeout  time.Duration
}

// Summarizer is the optional third summarization tier
type Summarizer struct {
	name   string
	config Config
}

// NewSummarizer creates a Gemini summarizer
func NewSummarizer(name string, config Config) *Summarizer {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &Summarizer{name: name, config: config}
}

// NewFromConfig is the provider.ProviderCreator for gemini_chat
func NewFromConfig(name string, cfg provider.ProviderConfig) (provider.Adapter, error) {
	return NewSummarizer(name, Config{
		APIKey:   cfg.Auth.APIKey,
		BaseURL:  cfg.Auth.BaseURL,
		Model:    cfg.Model,
		Enabled:  cfg.Enabled,
		Priority: cfg.Priority,
		Timeout:  cfg.Timeout(),
	}), nil
}

// Descriptor implements provider.Adapter
func (s *Summarizer) Descriptor() provider.Descriptor {
	return provider.Descriptor{
		Name:         s.name,
		Vendor:       "gemini",
		DisplayName:  "Gemini (" + s.config.Model + ")",
		Operation:    provider.OperationSummarize,
		Priority:     s.config.Priority,
		IsConfigured: s.config.Enabled && s.config.APIKey != "",
		Model:        s.config.Model,
		Timeout:      s.config.Timeout,
	}
}

// Invoke implements provider.Adapter
func (s *Summarizer) Invoke(ctx context.Context, req *provider.Request) (*provider.RawResponse, error) {
	if req == nil || strings.TrimSpace(req.Text) == "" {
		return nil, provider.NewProviderError(s.name, provider.ErrorKindUnsupportedInput, "text is empty")
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "interaction"
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  s.config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if s.config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: s.config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, provider.NewProviderError(s.name, provider.ErrorKindProviderInternal, fmt.Sprintf("create client: %v", err))
	}

	prompt := fmt.Sprintf(summaryPrompt, contentType, req.Text)
	result, err := client.Models.GenerateContent(ctx, s.config.Model, genai.Text(prompt), nil)
	if err != nil {
		return nil, s.classify(ctx, err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, provider.MalformedError(s.name, "empty response from Gemini", nil)
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	return &provider.RawResponse{Model: s.config.Model, Summary: text.String()}, nil
}

// classify maps Gemini errors by HTTP status, falling back to the status text
// for errors that carry no code
func (s *Summarizer) classify(ctx context.Context, err error) *provider.ProviderError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return provider.TransportError(ctx, s.name, err)
	}

	msg := err.Error()
	if code := statusCode(err); code != 0 {
		kind := provider.KindForStatus(code)
		// Gemini rejects a bad key as 400 INVALID_ARGUMENT
		if code == http.StatusBadRequest && strings.Contains(msg, "API_KEY_INVALID") {
			kind = provider.ErrorKindUnauthenticated
		}
		return s.generateError(kind, err)
	}

	kind := provider.ErrorKindProviderInternal
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		kind = provider.ErrorKindRateLimited
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "UNAUTHENTICATED") || strings.Contains(msg, "PERMISSION_DENIED") ||
		strings.Contains(msg, "API_KEY_INVALID"):
		kind = provider.ErrorKindUnauthenticated
	case strings.Contains(msg, "INVALID_ARGUMENT"):
		kind = provider.ErrorKindUnsupportedInput
	case strings.Contains(msg, "DEADLINE_EXCEEDED") || strings.Contains(msg, "504"):
		kind = provider.ErrorKindTimeout
	}

	return s.generateError(kind, err)
}

func (s *Summarizer) generateError(kind provider.ErrorKind, err error) *provider.ProviderError {
	return &provider.ProviderError{
		Kind:     kind,
		Provider: s.name,
		Message:  "generate content failed",
		Err:      err,
	}
}

func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}
