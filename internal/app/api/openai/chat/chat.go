package chat

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	openaiclient "briefly/internal/app/api/openai"
	"briefly/internal/app/api/provider"
)

const (
	GroqProviderType   = "groq_chat"
	OpenAIProviderType = "openai_chat"

	DefaultModel   = "llama-3.3-70b-versatile"
	DefaultTimeout = 60 * time.Second

	// DefaultChunkSize is measured in characters
	DefaultChunkSize = 100000

	chunkFailedMarker = "[Chunk processing failed]"

	summarySystemPrompt       = "You are a helpful assistant that creates concise one-line summaries of customer interactions."
	consolidationSystemPrompt = "You are a helpful assistant that consolidates multiple summaries into one concise insight."
)

// Config represents configuration for an OpenAI-compatible chat summarizer
type Config struct {
	Vendor               string
	APIKey               string
	BaseURL              string
	Model                string
	Temperature          float32
	MaxTokens            int
	ConsolidateMaxTokens int
	ChunkSize            int
	Enabled              bool
	Priority             int
	Timeout              time.Duration
}

// Summarizer produces one-line summaries with a chat completion model.
// Texts longer than the chunk size are summarized per chunk and then consolidated.
type Summarizer struct {
	name   string
	config Config
	client *openai.Client
}

// NewSummarizer creates a chat summarizer
func NewSummarizer(name string, config Config) *Summarizer {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 150
	}
	if config.ConsolidateMaxTokens == 0 {
		config.ConsolidateMaxTokens = 200
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Summarizer{
		name:   name,
		config: config,
		client: openaiclient.NewClient(config.APIKey, config.BaseURL),
	}
}

// Creator returns a provider.ProviderCreator bound to a vendor and its default endpoint
func Creator(vendor, defaultBaseURL string) provider.ProviderCreator {
	return func(name string, cfg provider.ProviderConfig) (provider.Adapter, error) {
		baseURL := cfg.Auth.BaseURL
		if baseURL == "" {
			baseURL = defaultBaseURL
		}
		return NewSummarizer(name, Config{
			Vendor:               vendor,
			APIKey:               cfg.Auth.APIKey,
			BaseURL:              baseURL,
			Model:                cfg.Model,
			Temperature:          float32(cfg.SettingFloat("temperature", 0.7)),
			MaxTokens:            cfg.SettingInt("max_tokens", 150),
			ConsolidateMaxTokens: cfg.SettingInt("consolidate_max_tokens", 200),
			ChunkSize:            cfg.SettingInt("chunk_size", DefaultChunkSize),
			Enabled:              cfg.Enabled,
			Priority:             cfg.Priority,
			Timeout:              cfg.Timeout(),
		}), nil
	}
}

// Descriptor implements provider.Adapter
func (s *Summarizer) Descriptor() provider.Descriptor {
	return provider.Descriptor{
		Name:         s.name,
		Vendor:       s.config.Vendor,
		DisplayName:  "Chat summarizer (" + s.config.Model + ")",
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

	chunks := SplitChunks(req.Text, s.config.ChunkSize)
	if len(chunks) == 1 {
		summary, err := s.complete(ctx, summarySystemPrompt, summaryPrompt(contentType, req.Text), s.config.MaxTokens)
		if err != nil {
			return nil, err
		}
		return &provider.RawResponse{Model: s.config.Model, Summary: summary}, nil
	}

	partials := make([]string, 0, len(chunks))
	failed := 0
	var firstErr error
	for _, chunk := range chunks {
		summary, err := s.complete(ctx, summarySystemPrompt, summaryPrompt(contentType, chunk), s.config.MaxTokens)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			if firstErr == nil {
				firstErr = err
			}
			failed++
			partials = append(partials, chunkFailedMarker)
			continue
		}
		partials = append(partials, summary)
	}
	if failed == len(chunks) {
		return nil, firstErr
	}

	summary, err := s.complete(ctx, consolidationSystemPrompt,
		consolidationPrompt(contentType, strings.Join(partials, "\n")), s.config.ConsolidateMaxTokens)
	if err != nil {
		return nil, err
	}

	return &provider.RawResponse{
		Model:   s.config.Model,
		Summary: summary,
		Metadata: map[string]interface{}{
			"chunks":        len(chunks),
			"failed_chunks": failed,
		},
	}, nil
}

func (s *Summarizer) complete(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: s.config.Temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", openaiclient.ClassifyError(ctx, s.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", provider.MalformedError(s.name, "response contained no choices", nil)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func summaryPrompt(contentType, text string) string {
	return fmt.Sprintf(`You are a customer service analyst. Provide a concise one-line summary of this %s.
Focus on the main topic, customer concern, or outcome.

%s: %s

One-line summary:`, contentType, capitalize(contentType), text)
}

func consolidationPrompt(contentType, partials string) string {
	return fmt.Sprintf(`You are a lead analyst. Below are summaries of different parts of a long %s.
Synthesize them into a single, cohesive one-line summary that captures the overall essence.

Partial Summaries:
%s

Final One-line summary:`, contentType, partials)
}

// capitalize upper-cases the first letter and lower-cases the rest
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// SplitChunks splits text into pieces of at most size characters.
// Splitting is on rune boundaries; text within the limit is returned whole.
func SplitChunks(text string, size int) []string {
	if size <= 0 || utf8.RuneCountInString(text) <= size {
		return []string{text}
	}

	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
