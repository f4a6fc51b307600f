package whisper

import (
	"bytes"
	"context"
	"time"

	"github.com/sashabaranov/go-openai"

	openaiclient "briefly/internal/app/api/openai"
	"briefly/internal/app/api/provider"
)

const (
	GroqProviderType   = "groq_whisper"
	OpenAIProviderType = "openai_whisper"

	DefaultModel   = "whisper-large-v3"
	DefaultTimeout = 60 * time.Second
)

// Config represents configuration for an OpenAI-compatible Whisper endpoint
type Config struct {
	Vendor   string
	APIKey   string
	BaseURL  string
	Model    string
	Language string
	Enabled  bool
	Priority int
	Timeout  time.Duration
}

// RemoteTranscriber transcribes audio through an OpenAI-compatible Whisper API.
// It does not diarize and reports the whole transcript as one utterance.
type RemoteTranscriber struct {
	name   string
	config Config
	client *openai.Client
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance
func NewRemoteTranscriber(name string, config Config) *RemoteTranscriber {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Language == "" {
		config.Language = "en"
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &RemoteTranscriber{
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
		return NewRemoteTranscriber(name, Config{
			Vendor:   vendor,
			APIKey:   cfg.Auth.APIKey,
			BaseURL:  baseURL,
			Model:    cfg.Model,
			Language: cfg.SettingString("language", "en"),
			Enabled:  cfg.Enabled,
			Priority: cfg.Priority,
			Timeout:  cfg.Timeout(),
		}), nil
	}
}

// Descriptor implements provider.Adapter
func (rt *RemoteTranscriber) Descriptor() provider.Descriptor {
	return provider.Descriptor{
		Name:         rt.name,
		Vendor:       rt.config.Vendor,
		DisplayName:  "Whisper (" + rt.config.Model + ")",
		Operation:    provider.OperationTranscribe,
		Priority:     rt.config.Priority,
		IsConfigured: rt.config.Enabled && rt.config.APIKey != "",
		Model:        rt.config.Model,
		Timeout:      rt.config.Timeout,
	}
}

// Invoke implements provider.Adapter
func (rt *RemoteTranscriber) Invoke(ctx context.Context, req *provider.Request) (*provider.RawResponse, error) {
	if req == nil || len(req.Audio) == 0 {
		return nil, provider.NewProviderError(rt.name, provider.ErrorKindUnsupportedInput, "audio payload is empty")
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "audio.mp3"
	}

	resp, err := rt.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       rt.config.Model,
		FilePath:    fileName,
		Reader:      bytes.NewReader(req.Audio),
		Language:    rt.config.Language,
		Format:      openai.AudioResponseFormatVerboseJSON,
		Temperature: 0,
	})
	if err != nil {
		return nil, openaiclient.ClassifyError(ctx, rt.name, err)
	}

	utterance := provider.RawUtterance{Text: resp.Text}
	if n := len(resp.Segments); n > 0 {
		utterance.Start = provider.Seconds(resp.Segments[0].Start)
		utterance.End = provider.Seconds(resp.Segments[n-1].End)
	}

	return &provider.RawResponse{
		Model: rt.config.Model,
		Transcript: &provider.RawTranscript{
			Text:       resp.Text,
			Language:   resp.Language,
			Utterances: []provider.RawUtterance{utterance},
		},
		Metadata: map[string]interface{}{
			"duration_sec": resp.Duration,
			"segments":     len(resp.Segments),
		},
	}, nil
}
