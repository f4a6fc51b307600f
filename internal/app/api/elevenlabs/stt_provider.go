package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"briefly/internal/app/api/provider"
)

const (
	DefaultBaseURL  = "https://api.elevenlabs.io/v1"
	DefaultModel    = "scribe_v2"
	DefaultLanguage = "en"
	DefaultTimeout  = 120 * time.Second

	// ProviderType is the factory key for this adapter
	ProviderType = "elevenlabs_stt"
)

// Config represents configuration for the ElevenLabs Scribe adapter
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
	Diarize  bool
	Enabled  bool
	Priority int
	Timeout  time.Duration
}

// ScribeProvider transcribes audio through the ElevenLabs Speech-to-Text API
type ScribeProvider struct {
	name   string
	config Config
	client *http.Client
}

// ScribeResponse represents the response from the Speech-to-Text API
type ScribeResponse struct {
	LanguageCode        string  `json:"language_code"`
	LanguageProbability float64 `json:"language_probability"`
	Text                string  `json:"text"`
	Words               []Word  `json:"words"`
}

// Word is a single token of the response. Type is word, spacing or audio_event.
type Word struct {
	Text      string   `json:"text"`
	Start     *float64 `json:"start"`
	End       *float64 `json:"end"`
	Type      string   `json:"type"`
	SpeakerID string   `json:"speaker_id"`
}

// NewScribeProvider creates a new ElevenLabs Scribe adapter
func NewScribeProvider(name string, config Config) *ScribeProvider {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Language == "" {
		config.Language = DefaultLanguage
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &ScribeProvider{
		name:   name,
		config: config,
		// Attempts are bounded by the orchestrator's context
		client: &http.Client{},
	}
}

// NewFromConfig is the provider.ProviderCreator for elevenlabs_stt
func NewFromConfig(name string, cfg provider.ProviderConfig) (provider.Adapter, error) {
	return NewScribeProvider(name, Config{
		APIKey:   cfg.Auth.APIKey,
		BaseURL:  cfg.Auth.BaseURL,
		Model:    cfg.Model,
		Language: cfg.SettingString("language_code", DefaultLanguage),
		Diarize:  cfg.SettingBool("diarize", true),
		Enabled:  cfg.Enabled,
		Priority: cfg.Priority,
		Timeout:  cfg.Timeout(),
	}), nil
}

// Descriptor implements provider.Adapter
func (p *ScribeProvider) Descriptor() provider.Descriptor {
	return provider.Descriptor{
		Name:                p.name,
		Vendor:              "elevenlabs",
		DisplayName:         "ElevenLabs Scribe",
		Operation:           provider.OperationTranscribe,
		SupportsDiarization: p.config.Diarize,
		Priority:            p.config.Priority,
		IsConfigured:        p.config.Enabled && p.config.APIKey != "",
		Model:               p.config.Model,
		Timeout:             p.config.Timeout,
	}
}

// Invoke implements provider.Adapter
func (p *ScribeProvider) Invoke(ctx context.Context, req *provider.Request) (*provider.RawResponse, error) {
	if req == nil || len(req.Audio) == 0 {
		return nil, provider.NewProviderError(p.name, provider.ErrorKindUnsupportedInput, "audio payload is empty")
	}

	httpReq, err := p.createHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, provider.TransportError(ctx, p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, provider.HTTPError(p.name, resp.StatusCode, body)
	}

	var scribeResp ScribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&scribeResp); err != nil {
		return nil, provider.MalformedError(p.name, "failed to parse API response", err)
	}

	return &provider.RawResponse{
		Model:      p.config.Model,
		Transcript: scribeResp.toRawTranscript(),
		Metadata: map[string]interface{}{
			"language_probability": scribeResp.LanguageProbability,
			"word_count":           len(scribeResp.Words),
		},
	}, nil
}

// createHTTPRequest creates the multipart request for the Speech-to-Text API
func (p *ScribeProvider) createHTTPRequest(ctx context.Context, req *provider.Request) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fileName := req.FileName
	if fileName == "" {
		fileName = "audio"
	}
	mimeType := req.MimeHint
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, provider.NewProviderError(p.name, provider.ErrorKindProviderInternal, fmt.Sprintf("failed to create form: %v", err))
	}
	if _, err := part.Write(req.Audio); err != nil {
		return nil, provider.NewProviderError(p.name, provider.ErrorKindProviderInternal, fmt.Sprintf("failed to copy audio data: %v", err))
	}

	fields := map[string]string{
		"model_id":      p.config.Model,
		"language_code": p.config.Language,
		"diarize":       strconv.FormatBool(p.config.Diarize),
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, provider.NewProviderError(p.name, provider.ErrorKindProviderInternal, fmt.Sprintf("failed to add %s field: %v", key, err))
		}
	}
	writer.Close()

	url := fmt.Sprintf("%s/speech-to-text", p.config.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, provider.NewProviderError(p.name, provider.ErrorKindProviderInternal, fmt.Sprintf("failed to create HTTP request: %v", err))
	}

	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("xi-api-key", p.config.APIKey)
	httpReq.Header.Set("User-Agent", "briefly/1.0")

	return httpReq, nil
}

// toRawTranscript groups words into utterances, starting a new one whenever
// the speaker changes. Audio events are dropped.
func (r *ScribeResponse) toRawTranscript() *provider.RawTranscript {
	transcript := &provider.RawTranscript{
		Text:     r.Text,
		Language: r.LanguageCode,
	}

	var current *provider.RawUtterance
	var text bytes.Buffer
	flush := func() {
		if current != nil {
			current.Text = text.String()
			transcript.Utterances = append(transcript.Utterances, *current)
		}
		current = nil
		text.Reset()
	}

	for _, word := range r.Words {
		if word.Type == "audio_event" {
			continue
		}
		if current != nil && word.Type != "spacing" && word.SpeakerID != current.SpeakerID {
			flush()
		}
		if current == nil {
			if word.Type == "spacing" {
				continue
			}
			current = &provider.RawUtterance{SpeakerID: word.SpeakerID, Start: word.Start}
		}
		text.WriteString(word.Text)
		if word.Type != "spacing" && word.End != nil {
			current.End = word.End
		}
	}
	flush()

	return transcript
}
