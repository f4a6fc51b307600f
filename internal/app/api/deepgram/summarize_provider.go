package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"briefly/internal/app/api/provider"
)

const (
	// SummarizeProviderType is the factory key for the summarization adapter
	SummarizeProviderType = "deepgram_summarize"

	DefaultSummarizeModel = "summarize-v2"

	// Texts shorter than this are already a summary
	minWordsToSummarize = 10
)

// SummarizeProvider summarizes text with Deepgram text intelligence
type SummarizeProvider struct {
	name   string
	config Config
	client *restClient
}

// ReadResponse is the subset of the /read response the adapter reads
type ReadResponse struct {
	Results struct {
		Summary struct {
			Text string `json:"text"`
		} `json:"summary"`
	} `json:"results"`
}

// NewSummarizeProvider creates a Deepgram summarization adapter
func NewSummarizeProvider(name string, config Config) *SummarizeProvider {
	config = config.withDefaults(DefaultSummarizeModel)
	return &SummarizeProvider{
		name:   name,
		config: config,
		client: newRESTClient(name, config),
	}
}

// NewSummarizeFromConfig is the provider.ProviderCreator for deepgram_summarize
func NewSummarizeFromConfig(name string, cfg provider.ProviderConfig) (provider.Adapter, error) {
	return NewSummarizeProvider(name, configFrom(cfg)), nil
}

// Descriptor implements provider.Adapter
func (p *SummarizeProvider) Descriptor() provider.Descriptor {
	return provider.Descriptor{
		Name:         p.name,
		Vendor:       "deepgram",
		DisplayName:  "Deepgram Text Intelligence",
		Operation:    provider.OperationSummarize,
		Priority:     p.config.Priority,
		IsConfigured: p.config.Enabled && p.config.APIKey != "",
		Model:        p.config.Model,
		Timeout:      p.config.Timeout,
	}
}

// Invoke implements provider.Adapter
func (p *SummarizeProvider) Invoke(ctx context.Context, req *provider.Request) (*provider.RawResponse, error) {
	if req == nil || strings.TrimSpace(req.Text) == "" {
		return nil, provider.NewProviderError(p.name, provider.ErrorKindUnsupportedInput, "text is empty")
	}

	if len(strings.Fields(req.Text)) < minWordsToSummarize {
		return &provider.RawResponse{
			Model:    p.config.Model,
			Summary:  req.Text,
			Metadata: map[string]interface{}{"passthrough": true},
		}, nil
	}

	payload, err := json.Marshal(map[string]string{"text": req.Text})
	if err != nil {
		return nil, provider.NewProviderError(p.name, provider.ErrorKindProviderInternal, "failed to encode request")
	}

	query := url.Values{}
	query.Set("summarize", "v2")
	query.Set("language", p.config.Language)

	var read ReadResponse
	if err := p.client.post(ctx, "/read", query, "application/json", bytes.NewReader(payload), &read); err != nil {
		return nil, err
	}

	return &provider.RawResponse{
		Model:   p.config.Model,
		Summary: read.Results.Summary.Text,
	}, nil
}
