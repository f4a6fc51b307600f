package model

import (
	"time"

	"briefly/internal/app/api/provider"
)

// ResultType distinguishes results built from audio from those built from text
type ResultType string

const (
	ResultTypeCall ResultType = "call"
	ResultTypeChat ResultType = "chat"
)

// Content types passed to summarizers
const (
	ContentTypeInteraction  = "interaction"
	ContentTypeDocument     = "document"
	ContentTypeVoiceCapture = "voice capture"
)

// DistillationResult is the outcome of one distillation request.
// Exactly one of Transcription and OriginalText is set.
type DistillationResult struct {
	Type          ResultType `json:"type"`
	Summary       string     `json:"summary"`
	Transcription string     `json:"transcription,omitempty"`
	OriginalText  string     `json:"original_text,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`

	Segments              []provider.TranscriptSegment `json:"segments,omitempty"`
	Diarized              *bool                        `json:"diarized,omitempty"`
	TranscriptionProvider string                       `json:"transcription_provider,omitempty"`
	SummaryProvider       string                       `json:"summary_provider,omitempty"`
	SourceName            string                       `json:"source_name,omitempty"`
}
