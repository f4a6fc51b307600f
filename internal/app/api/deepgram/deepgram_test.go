package deepgram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefly/internal/app/api/provider"
)

const listenFixture = `{
  "metadata": {"request_id": "req-123"},
  "results": {
    "channels": [{"detected_language": "en", "alternatives": [{"transcript": "hello I need help with my order", "confidence": 0.97}]}],
    "utterances": [
      {"start": 0.0, "end": 0.9, "transcript": "Hello.", "speaker": 0},
      {"start": 1.0, "end": 2.5, "transcript": "I need help with my order.", "speaker": 1}
    ]
  }
}`

func testServer(t *testing.T, handler http.HandlerFunc) Config {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return Config{APIKey: "dg_test", BaseURL: server.URL, Enabled: true, Priority: 20}
}

func TestSTTProvider_Invoke(t *testing.T) {
	config := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listen", r.URL.Path)
		assert.Equal(t, "Token dg_test", r.Header.Get("Authorization"))
		assert.Equal(t, "audio/wav", r.Header.Get("Content-Type"))

		query := r.URL.Query()
		assert.Equal(t, "nova-2", query.Get("model"))
		for _, flag := range []string{"smart_format", "diarize", "punctuate", "utterances"} {
			assert.Equal(t, "true", query.Get(flag), flag)
		}

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "wav-bytes", string(body))
		_, _ = w.Write([]byte(listenFixture))
	})

	p := NewSTTProvider("deepgram-nova", config)
	resp, err := p.Invoke(context.Background(), &provider.Request{Audio: []byte("wav-bytes"), MimeHint: "audio/wav"})
	require.NoError(t, err)

	require.Len(t, resp.Transcript.Utterances, 2)
	assert.Equal(t, "0", resp.Transcript.Utterances[0].SpeakerID)
	assert.Equal(t, "1", resp.Transcript.Utterances[1].SpeakerID)
	assert.Equal(t, "en", resp.Transcript.Language)
	assert.Equal(t, "req-123", resp.Metadata["request_id"])

	transcript, err := provider.NormalizeTranscript("deepgram-nova", resp.Transcript)
	require.NoError(t, err)
	assert.True(t, transcript.Diarized)
	assert.Equal(t, "Speaker 0", *transcript.Segments[0].SpeakerLabel)
	assert.Equal(t, int64(2500), *transcript.Segments[1].EndOffsetMs)
}

func TestSTTProvider_FallsBackToChannelTranscript(t *testing.T) {
	config := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":"no speakers here"}]}]}}`))
	})

	resp, err := NewSTTProvider("deepgram-nova", config).
		Invoke(context.Background(), &provider.Request{Audio: []byte("a")})
	require.NoError(t, err)

	transcript, err := provider.NormalizeTranscript("deepgram-nova", resp.Transcript)
	require.NoError(t, err)
	assert.False(t, transcript.Diarized)
	assert.Equal(t, "no speakers here", transcript.FullText)
}

func TestSTTProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    provider.ErrorKind
	}{
		{
			name: "invalid credentials",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			want: provider.ErrorKindUnauthenticated,
		},
		{
			name: "unsupported media",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"err_code":"Bad Request","err_msg":"corrupt or unsupported data"}`))
			},
			want: provider.ErrorKindUnsupportedInput,
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			want: provider.ErrorKindMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSTTProvider("deepgram-nova", testServer(t, tt.handler))
			_, err := p.Invoke(context.Background(), &provider.Request{Audio: []byte("a")})
			require.Error(t, err)
			assert.Equal(t, tt.want, provider.ClassifyError(err))
		})
	}
}

func TestSummarizeProvider_Invoke(t *testing.T) {
	config := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/read", r.URL.Path)
		assert.Equal(t, "v2", r.URL.Query().Get("summarize"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.True(t, strings.HasPrefix(payload["text"], "Customer called"))

		_, _ = w.Write([]byte(`{"results":{"summary":{"text":"Customer requests a refund for a broken blender."}}}`))
	})

	p := NewSummarizeProvider("deepgram-summarize", config)
	resp, err := p.Invoke(context.Background(), &provider.Request{
		Text: "Customer called about a blender purchased on January 15 that stopped working after two days.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Customer requests a refund for a broken blender.", resp.Summary)
}

func TestSummarizeProvider_ShortTextPassthrough(t *testing.T) {
	var calls int32
	config := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	p := NewSummarizeProvider("deepgram-summarize", config)
	resp, err := p.Invoke(context.Background(), &provider.Request{Text: "Refund for blender please"})
	require.NoError(t, err)
	assert.Equal(t, "Refund for blender please", resp.Summary)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestSummarizeProvider_RateLimited(t *testing.T) {
	config := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	p := NewSummarizeProvider("deepgram-summarize", config)
	_, err := p.Invoke(context.Background(), &provider.Request{
		Text: strings.Repeat("word ", 20),
	})
	assert.Equal(t, provider.ErrorKindRateLimited, provider.ClassifyError(err))
}

func TestCreators(t *testing.T) {
	stt, err := NewSTTFromConfig("deepgram-nova", provider.ProviderConfig{Enabled: true, Priority: 20})
	require.NoError(t, err)
	assert.False(t, stt.Descriptor().IsConfigured)
	assert.True(t, stt.Descriptor().SupportsDiarization)
	assert.Equal(t, DefaultTimeout, stt.Descriptor().Timeout)

	summarize, err := NewSummarizeFromConfig("deepgram-summarize", provider.ProviderConfig{
		Enabled: true,
		Auth:    provider.AuthConfig{APIKey: "dg"},
	})
	require.NoError(t, err)
	assert.True(t, summarize.Descriptor().IsConfigured)
	assert.Equal(t, provider.OperationSummarize, summarize.Descriptor().Operation)
}
