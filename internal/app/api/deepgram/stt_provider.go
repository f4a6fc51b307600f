package deepgram

import (
	"bytes"
	"context"
	"net/url"
	"strconv"

	"briefly/internal/app/api/provider"
)

const (
	// STTProviderType is the factory key for the transcription adapter
	STTProviderType = "deepgram_stt"

	DefaultSTTModel = "nova-2"
)

// STTProvider transcribes prerecorded audio with speaker diarization
type STTProvider struct {
	name   string
	config Config
	client *restClient
}

// ListenResponse is the subset of the /listen response the adapter reads
type ListenResponse struct {
	Metadata struct {
		RequestID string `json:"request_id"`
	} `json:"metadata"`
	Results struct {
		Channels []struct {
			DetectedLanguage string `json:"detected_language"`
			Alternatives     []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
		Utterances []Utterance `json:"utterances"`
	} `json:"results"`
}

// Utterance is a speaker-separated span
type Utterance struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Transcript string  `json:"transcript"`
	Speaker    *int    `json:"speaker"`
}

// NewSTTProvider creates a Deepgram transcription adapter
func NewSTTProvider(name string, config Config) *STTProvider {
	config = config.withDefaults(DefaultSTTModel)
	return &STTProvider{
		name:   name,
		config: config,
		client: newRESTClient(name, config),
	}
}

// NewSTTFromConfig is the provider.ProviderCreator for deepgram_stt
func NewSTTFromConfig(name string, cfg provider.ProviderConfig) (provider.Adapter, error) {
	return NewSTTProvider(name, configFrom(cfg)), nil
}

// Descriptor implements provider.Adapter
func (p *STTProvider) Descriptor() provider.Descriptor {
	return provider.Descriptor{
		Name:                p.name,
		Vendor:              "deepgram",
		DisplayName:         "Deepgram Nova",
		Operation:           provider.OperationTranscribe,
		SupportsDiarization: true,
		Priority:            p.config.Priority,
		IsConfigured:        p.config.Enabled && p.config.APIKey != "",
		Model:               p.config.Model,
		Timeout:             p.config.Timeout,
	}
}

// Invoke implements provider.Adapter
func (p *STTProvider) Invoke(ctx context.Context, req *provider.Request) (*provider.RawResponse, error) {
	if req == nil || len(req.Audio) == 0 {
		return nil, provider.NewProviderError(p.name, provider.ErrorKindUnsupportedInput, "audio payload is empty")
	}

	query := url.Values{}
	query.Set("model", p.config.Model)
	query.Set("language", p.config.Language)
	query.Set("smart_format", "true")
	query.Set("diarize", "true")
	query.Set("punctuate", "true")
	query.Set("utterances", "true")

	contentType := req.MimeHint
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var listen ListenResponse
	if err := p.client.post(ctx, "/listen", query, contentType, bytes.NewReader(req.Audio), &listen); err != nil {
		return nil, err
	}

	return &provider.RawResponse{
		Model:      p.config.Model,
		Transcript: listen.toRawTranscript(),
		Metadata: map[string]interface{}{
			"request_id": listen.Metadata.RequestID,
			"utterances": len(listen.Results.Utterances),
		},
	}, nil
}

// toRawTranscript prefers utterances and falls back to the first channel's
// best alternative when the response carries none.
func (r *ListenResponse) toRawTranscript() *provider.RawTranscript {
	transcript := &provider.RawTranscript{}
	if len(r.Results.Channels) > 0 {
		channel := r.Results.Channels[0]
		transcript.Language = channel.DetectedLanguage
		if len(channel.Alternatives) > 0 {
			transcript.Text = channel.Alternatives[0].Transcript
		}
	}

	for _, utterance := range r.Results.Utterances {
		raw := provider.RawUtterance{
			Text:  utterance.Transcript,
			Start: provider.Seconds(utterance.Start),
			End:   provider.Seconds(utterance.End),
		}
		if utterance.Speaker != nil {
			raw.SpeakerID = strconv.Itoa(*utterance.Speaker)
		}
		transcript.Utterances = append(transcript.Utterances, raw)
	}
	return transcript
}
