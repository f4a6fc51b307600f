package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"briefly/internal/app/api/provider"
)

const (
	DefaultBaseURL = "https://api.deepgram.com/v1"
	DefaultTimeout = 120 * time.Second
)

// Config is shared by the transcription and summarization adapters
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
	Enabled  bool
	Priority int
	Timeout  time.Duration
}

func (c Config) withDefaults(model string) Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = model
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

func configFrom(cfg provider.ProviderConfig) Config {
	return Config{
		APIKey:   cfg.Auth.APIKey,
		BaseURL:  cfg.Auth.BaseURL,
		Model:    cfg.Model,
		Language: cfg.SettingString("language", "en"),
		Enabled:  cfg.Enabled,
		Priority: cfg.Priority,
		Timeout:  cfg.Timeout(),
	}
}

// restClient performs authenticated calls against the Deepgram REST API
type restClient struct {
	name    string
	apiKey  string
	baseURL string
	http    *http.Client
}

func newRESTClient(name string, config Config) *restClient {
	return &restClient{
		name:    name,
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		http:    &http.Client{},
	}
}

// post sends body to path and decodes a 200 response into out
func (c *restClient) post(ctx context.Context, path string, query url.Values, contentType string, body io.Reader, out interface{}) error {
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return provider.NewProviderError(c.name, provider.ErrorKindProviderInternal, fmt.Sprintf("failed to create HTTP request: %v", err))
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "briefly/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return provider.TransportError(ctx, c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return provider.HTTPError(c.name, resp.StatusCode, data)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return provider.MalformedError(c.name, "failed to parse API response", err)
	}
	return nil
}
