package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTranscript_Diarized(t *testing.T) {
	raw := &RawTranscript{
		Language: "en",
		Utterances: []RawUtterance{
			{SpeakerID: "speaker_0", Text: " Thanks for calling. ", Start: Seconds(0), End: Seconds(1.25)},
			{SpeakerID: "speaker_1", Text: "I want a refund.", Start: Seconds(1.5), End: Seconds(2.75)},
			{SpeakerID: "speaker_1", Text: "It broke on day one.", Start: Seconds(3), End: Seconds(4)},
		},
	}

	transcript, err := NormalizeTranscript("test", raw)
	require.NoError(t, err)

	assert.True(t, transcript.Diarized)
	assert.Equal(t, "en", transcript.Language)
	require.Len(t, transcript.Segments, 3, "adjacent same-speaker utterances must not be merged")

	assert.Equal(t, "Speaker 0", *transcript.Segments[0].SpeakerLabel)
	assert.Equal(t, "Thanks for calling.", transcript.Segments[0].Text)
	assert.Equal(t, int64(0), *transcript.Segments[0].StartOffsetMs)
	assert.Equal(t, int64(1250), *transcript.Segments[0].EndOffsetMs)

	assert.Equal(t, "Speaker 1", *transcript.Segments[2].SpeakerLabel)
	assert.Equal(t, "Thanks for calling.\nI want a refund.\nIt broke on day one.", transcript.FullText)
}

func TestNormalizeTranscript_NonDiarized(t *testing.T) {
	raw := &RawTranscript{
		Text:       "one blob of text",
		Utterances: []RawUtterance{{Text: "one blob of text", Start: Seconds(0), End: Seconds(12.5)}},
	}

	transcript, err := NormalizeTranscript("test", raw)
	require.NoError(t, err)

	assert.False(t, transcript.Diarized)
	require.Len(t, transcript.Segments, 1)
	assert.Nil(t, transcript.Segments[0].SpeakerLabel)
	assert.Equal(t, "one blob of text", transcript.FullText)
}

func TestNormalizeTranscript_TextOnly(t *testing.T) {
	transcript, err := NormalizeTranscript("test", &RawTranscript{Text: "  plain text  "})
	require.NoError(t, err)

	require.Len(t, transcript.Segments, 1)
	assert.Nil(t, transcript.Segments[0].SpeakerLabel)
	assert.Nil(t, transcript.Segments[0].StartOffsetMs)
	assert.Equal(t, "plain text", transcript.FullText)
}

func TestNormalizeTranscript_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  *RawTranscript
	}{
		{name: "nil transcript", raw: nil},
		{name: "no text at all", raw: &RawTranscript{}},
		{name: "only blank utterances", raw: &RawTranscript{Utterances: []RawUtterance{{SpeakerID: "0", Text: "  "}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeTranscript("test", tt.raw)
			require.Error(t, err)
			assert.Equal(t, ErrorKindMalformedResponse, ClassifyError(err))
		})
	}
}

func TestSpeakerLabel(t *testing.T) {
	tests := []struct {
		id   string
		want *string
	}{
		{id: "", want: nil},
		{id: "speaker_3", want: strPtr("Speaker 3")},
		{id: "0", want: strPtr("Speaker 0")},
		{id: "Speaker 2", want: strPtr("Speaker 2")},
		{id: "agent", want: strPtr("Speaker agent")},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, speakerLabel(tt.id))
		})
	}
}

func TestRenormalize_Idempotent(t *testing.T) {
	raw := &RawTranscript{
		Utterances: []RawUtterance{
			{SpeakerID: "1", Text: "first", Start: Seconds(0.5), End: Seconds(1)},
			{Text: "second"},
			{SpeakerID: "speaker_2", Text: "third"},
		},
	}

	once, err := NormalizeTranscript("test", raw)
	require.NoError(t, err)

	twice, err := Renormalize(once)
	require.NoError(t, err)

	assert.Equal(t, once.FullText, twice.FullText)
	assert.Equal(t, once.Segments, twice.Segments)
	assert.Equal(t, once.Diarized, twice.Diarized)
}

func TestNormalizeSummary(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "trims whitespace and trailing newline",
			raw:  " Customer requests refund for broken blender purchased Jan 15\n",
			want: "Customer requests refund for broken blender purchased Jan 15",
		},
		{
			name: "strips wrapping quotes",
			raw:  "\"Customer wants a callback tomorrow.\"",
			want: "Customer wants a callback tomorrow.",
		},
		{
			name: "strips typographic quotes",
			raw:  "“Order delayed; customer asks for tracking.”",
			want: "Order delayed; customer asks for tracking.",
		},
		{
			name: "strips nested wrapping pairs",
			raw:  "` \"Customer cancelled the order.\" `",
			want: "Customer cancelled the order.",
		},
		{
			name: "keeps trailing quoted word",
			raw:  "Customer says the blender is \"broken\"",
			want: "Customer says the blender is \"broken\"",
		},
		{
			name: "keeps leading apostrophe",
			raw:  "'90s stereo returned for refund",
			want: "'90s stereo returned for refund",
		},
		{
			name: "keeps mismatched quotes",
			raw:  "“Refund issued\"",
			want: "“Refund issued\"",
		},
		{
			name: "collapses internal newlines",
			raw:  "Customer reports outage.\n\n  Agent opened ticket.\r\nFollow-up due Friday.",
			want: "Customer reports outage. Agent opened ticket. Follow-up due Friday.",
		},
		{
			name:    "empty",
			raw:     "  \n\t ",
			wantErr: true,
		},
		{
			name:    "only quotes",
			raw:     "\"\"",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSummary("test", tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrorKindMalformedResponse, ClassifyError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func strPtr(s string) *string {
	return &s
}
