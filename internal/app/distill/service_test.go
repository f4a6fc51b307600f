package distill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefly/internal/app/api/provider"
	apperrors "briefly/internal/app/errors"
	"briefly/internal/app/model"
	"briefly/internal/app/testutil"
)

func newService(t *testing.T, adapters ...provider.Adapter) *Service {
	t.Helper()
	registry := testutil.RegistryWith(t, adapters...)
	orchestrator := provider.NewOrchestrator(registry, nil, provider.DefaultOrchestratorConfig(), nil)
	return NewService(orchestrator, registry, nil, WithClock(testutil.FixedClock))
}

func TestProcessChat_RefundExample(t *testing.T) {
	groq := testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10).
		WithSummary(testutil.RefundSummaryRaw)
	svc := newService(t, groq)

	result, err := svc.ProcessChat(context.Background(), testutil.RefundChat)
	require.NoError(t, err)

	assert.Equal(t, model.ResultTypeChat, result.Type)
	assert.Equal(t, testutil.RefundSummary, result.Summary)
	assert.Equal(t, testutil.RefundChat, result.OriginalText)
	assert.Empty(t, result.Transcription)
	assert.Equal(t, testutil.FixedTime, result.Timestamp)
	assert.Equal(t, "groq-llama", result.SummaryProvider)

	require.Len(t, groq.Requests(), 1)
	assert.Equal(t, model.ContentTypeInteraction, groq.Requests()[0].ContentType)
}

func TestProcessChat_EmptyText(t *testing.T) {
	groq := testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10)
	svc := newService(t, groq)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.ProcessChat(context.Background(), text)
		assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
	}
	assert.Zero(t, groq.Calls())
}

func TestProcessChat_SummaryFallback(t *testing.T) {
	groq := testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10).
		WithError(provider.ErrorKindRateLimited)
	deepgram := testutil.NewStubAdapter("deepgram-summarize", provider.OperationSummarize, 20).
		WithSummary("Refund requested")
	svc := newService(t, deepgram, groq)

	result, err := svc.ProcessChat(context.Background(), "please refund")
	require.NoError(t, err)
	assert.Equal(t, "Refund requested", result.Summary)
	assert.Equal(t, "deepgram-summarize", result.SummaryProvider)
	assert.Equal(t, 1, groq.Calls())
}

func TestProcessChat_NoSummarizer(t *testing.T) {
	svc := newService(t, testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10).Unconfigured())

	_, err := svc.ProcessChat(context.Background(), "hello")
	assert.ErrorIs(t, err, provider.ErrNoProviderConfigured)
}

func TestProcessFile(t *testing.T) {
	groq := testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10).
		WithSummary("Quarterly report shows churn up")
	svc := newService(t, groq)

	result, err := svc.ProcessFile(context.Background(), "Churn rose 4% this quarter.", "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, model.ResultTypeChat, result.Type)
	assert.Equal(t, "Churn rose 4% this quarter.", result.OriginalText)
	assert.Equal(t, "report.pdf", result.SourceName)
	assert.Equal(t, model.ContentTypeDocument, groq.Requests()[0].ContentType)

	_, err = svc.ProcessFile(context.Background(), "  ", "empty.txt")
	assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
}

func TestProcessCall_Diarized(t *testing.T) {
	scribe := testutil.NewStubAdapter("elevenlabs-scribe", provider.OperationTranscribe, 10).
		Diarizing().
		WithTranscript(testutil.DiarizedTranscript())
	groq := testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10).
		WithSummary(testutil.RefundSummaryRaw)
	svc := newService(t, scribe, groq)

	result, err := svc.ProcessCall(context.Background(), []byte("audio"), "audio/mpeg", "call.mp3")
	require.NoError(t, err)

	assert.Equal(t, model.ResultTypeCall, result.Type)
	assert.Equal(t, testutil.DiarizedFullText, result.Transcription)
	assert.Empty(t, result.OriginalText)
	assert.Equal(t, testutil.RefundSummary, result.Summary)
	require.NotNil(t, result.Diarized)
	assert.True(t, *result.Diarized)
	require.Len(t, result.Segments, 3)
	assert.Equal(t, "Speaker 1", *result.Segments[1].SpeakerLabel)
	assert.Equal(t, "elevenlabs-scribe", result.TranscriptionProvider)
	assert.Equal(t, "call.mp3", result.SourceName)

	transcribeReq := scribe.Requests()[0]
	assert.Equal(t, "audio/mpeg", transcribeReq.MimeHint)
	assert.Equal(t, "call.mp3", transcribeReq.FileName)

	summarizeReq := groq.Requests()[0]
	assert.Equal(t, testutil.DiarizedFullText, summarizeReq.Text)
	assert.Equal(t, model.ContentTypeVoiceCapture, summarizeReq.ContentType)
}

func TestProcessCall_AllTranscribersFail(t *testing.T) {
	scribe := testutil.NewStubAdapter("elevenlabs-scribe", provider.OperationTranscribe, 10).WithError(provider.ErrorKindTimeout)
	nova := testutil.NewStubAdapter("deepgram-nova", provider.OperationTranscribe, 20).WithError(provider.ErrorKindRateLimited)
	whisper := testutil.NewStubAdapter("groq-whisper", provider.OperationTranscribe, 30).WithError(provider.ErrorKindUnauthenticated)
	groq := testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10)
	svc := newService(t, scribe, nova, whisper, groq)

	_, err := svc.ProcessCall(context.Background(), []byte("audio"), "audio/wav", "a.wav")
	require.ErrorIs(t, err, provider.ErrAllProvidersFailed)

	var failed *provider.AllProvidersFailedError
	require.ErrorAs(t, err, &failed)
	require.Len(t, failed.Attempts, 3)
	assert.Equal(t, provider.ErrorKindTimeout, failed.Attempts[0].ErrorKind)
	assert.Equal(t, provider.ErrorKindRateLimited, failed.Attempts[1].ErrorKind)
	assert.Equal(t, provider.ErrorKindUnauthenticated, failed.Attempts[2].ErrorKind)
	assert.Zero(t, groq.Calls(), "summarization is not attempted without a transcript")
}

func TestProcessCall_EmptyAudio(t *testing.T) {
	scribe := testutil.NewStubAdapter("elevenlabs-scribe", provider.OperationTranscribe, 10)
	svc := newService(t, scribe)

	_, err := svc.ProcessCall(context.Background(), nil, "audio/mpeg", "x.mp3")
	assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
	assert.Zero(t, scribe.Calls())
}

func TestProcessCall_NoSummarizerSkipsTranscription(t *testing.T) {
	tests := []struct {
		name       string
		summarizer provider.Adapter
	}{
		{name: "none registered"},
		{name: "registered but unconfigured", summarizer: testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10).Unconfigured()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scribe := testutil.NewStubAdapter("elevenlabs-scribe", provider.OperationTranscribe, 10)
			adapters := []provider.Adapter{scribe}
			if tt.summarizer != nil {
				adapters = append(adapters, tt.summarizer)
			}
			svc := newService(t, adapters...)

			_, err := svc.ProcessCall(context.Background(), []byte("audio"), "audio/mpeg", "call.mp3")
			require.ErrorIs(t, err, provider.ErrNoProviderConfigured)

			var notConfigured *provider.NoProviderConfiguredError
			require.ErrorAs(t, err, &notConfigured)
			assert.Equal(t, provider.OperationSummarize, notConfigured.Operation)
			assert.Zero(t, scribe.Calls())
		})
	}
}
