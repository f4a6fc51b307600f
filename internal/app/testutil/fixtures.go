package testutil

import (
	"time"

	"briefly/internal/app/api/provider"
	"briefly/internal/app/model"
)

// FixedTime is the clock used by fixtures
var FixedTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// FixedClock returns FixedTime
func FixedClock() time.Time {
	return FixedTime
}

// RefundChat is the canonical chat input
const RefundChat = "Customer wants a refund for a broken blender bought Jan 15"

// RefundSummaryRaw is how a model typically wraps the refund summary
const RefundSummaryRaw = " Customer requests refund for broken blender purchased Jan 15\n"

// RefundSummary is RefundSummaryRaw after normalization
const RefundSummary = "Customer requests refund for broken blender purchased Jan 15"

// DiarizedTranscript returns three chronological utterances from two speakers
func DiarizedTranscript() *provider.RawTranscript {
	return &provider.RawTranscript{
		Language: "en",
		Utterances: []provider.RawUtterance{
			{SpeakerID: "speaker_0", Text: "Thanks for calling, how can I help?", Start: provider.Seconds(0), End: provider.Seconds(2.5)},
			{SpeakerID: "speaker_1", Text: "My blender broke and I want a refund.", Start: provider.Seconds(2.7), End: provider.Seconds(5.1)},
			{SpeakerID: "speaker_0", Text: "I can process that for you today.", Start: provider.Seconds(5.3), End: provider.Seconds(7.0)},
		},
	}
}

// DiarizedFullText is DiarizedTranscript's utterance texts joined by newlines
const DiarizedFullText = "Thanks for calling, how can I help?\nMy blender broke and I want a refund.\nI can process that for you today."

// PlainTranscript returns a single undiarized blob
func PlainTranscript() *provider.RawTranscript {
	return &provider.RawTranscript{
		Text: "Hello, I would like to return my order.",
		Utterances: []provider.RawUtterance{
			{Text: "Hello, I would like to return my order.", Start: provider.Seconds(0), End: provider.Seconds(3)},
		},
	}
}

// SampleChatResult returns a chat DistillationResult
func SampleChatResult() *model.DistillationResult {
	return &model.DistillationResult{
		Type:            model.ResultTypeChat,
		Summary:         RefundSummary,
		OriginalText:    RefundChat,
		Timestamp:       FixedTime,
		SummaryProvider: "groq-llama",
	}
}

// SampleCallResult returns a call DistillationResult
func SampleCallResult() *model.DistillationResult {
	diarized := true
	return &model.DistillationResult{
		Type:                  model.ResultTypeCall,
		Summary:               RefundSummary,
		Transcription:         DiarizedFullText,
		Timestamp:             FixedTime,
		Diarized:              &diarized,
		TranscriptionProvider: "elevenlabs-scribe",
		SummaryProvider:       "groq-llama",
		SourceName:            "call.mp3",
	}
}
