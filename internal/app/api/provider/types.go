package provider

import (
	"path/filepath"
	"strings"
	"time"
)

// OperationKind identifies the capability an adapter provides
type OperationKind string

const (
	OperationTranscribe OperationKind = "transcribe"
	OperationSummarize  OperationKind = "summarize"
)

// Valid reports whether the kind is one the orchestrator can execute
func (k OperationKind) Valid() bool {
	return k == OperationTranscribe || k == OperationSummarize
}

// AudioFormat defines accepted audio containers
type AudioFormat string

const (
	FormatMP3  AudioFormat = "mp3"
	FormatWAV  AudioFormat = "wav"
	FormatM4A  AudioFormat = "m4a"
	FormatOGG  AudioFormat = "ogg"
	FormatWEBM AudioFormat = "webm"
	FormatMP4  AudioFormat = "mp4"
)

var audioMimeTypes = map[AudioFormat]string{
	FormatMP3:  "audio/mpeg",
	FormatWAV:  "audio/wav",
	FormatM4A:  "audio/mp4",
	FormatOGG:  "audio/ogg",
	FormatWEBM: "audio/webm",
	FormatMP4:  "video/mp4",
}

// IsValidAudioFormat checks if the given format is accepted
func IsValidAudioFormat(format string) bool {
	_, ok := audioMimeTypes[AudioFormat(strings.ToLower(format))]
	return ok
}

// GetAudioFormatFromFilename extracts audio format from filename
func GetAudioFormatFromFilename(filename string) AudioFormat {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !IsValidAudioFormat(ext) {
		return ""
	}
	return AudioFormat(ext)
}

// MimeType returns the content type sent upstream for the format.
func (f AudioFormat) MimeType() string {
	if mime, ok := audioMimeTypes[f]; ok {
		return mime
	}
	return "application/octet-stream"
}

// Descriptor identifies one adapter and its capabilities
type Descriptor struct {
	Name                string        `json:"name"`
	Vendor              string        `json:"vendor"`
	DisplayName         string        `json:"display_name"`
	Operation           OperationKind `json:"operation_kind"`
	SupportsDiarization bool          `json:"supports_diarization"`
	// Lower values are tried first
	Priority     int           `json:"priority"`
	IsConfigured bool          `json:"is_configured"`
	Model        string        `json:"model,omitempty"`
	Timeout      time.Duration `json:"timeout"`
}

// Request is the payload handed to every candidate of a chain.
// Transcription adapters read Audio and MimeHint, summarization adapters
// read Text and ContentType.
type Request struct {
	Audio    []byte
	MimeHint string
	FileName string

	Text string
	// ContentType is the human noun used in prompts ("interaction", "document", "voice capture")
	ContentType string
}

// RawResponse is what an adapter returns before normalization
type RawResponse struct {
	Model      string
	Transcript *RawTranscript
	Summary    string
	Metadata   map[string]interface{}
}

// RawTranscript carries provider utterances in the order they were received
type RawTranscript struct {
	Text       string
	Language   string
	Utterances []RawUtterance
}

// RawUtterance is one provider utterance. SpeakerID holds the provider's own
// identifier ("speaker_0", "1") and is empty when the provider does not diarize.
type RawUtterance struct {
	SpeakerID string
	Text      string
	Start     *float64 // seconds
	End       *float64 // seconds
}

// Seconds returns a pointer to v, for building RawUtterance offsets
func Seconds(v float64) *float64 {
	return &v
}

// TranscriptSegment is one canonical, chronologically ordered piece of a transcript
type TranscriptSegment struct {
	SpeakerLabel  *string `json:"speaker_label"`
	Text          string  `json:"text"`
	StartOffsetMs *int64  `json:"start_offset_ms,omitempty"`
	EndOffsetMs   *int64  `json:"end_offset_ms,omitempty"`
}

// CanonicalTranscript is the provider-agnostic transcript
type CanonicalTranscript struct {
	Segments []TranscriptSegment `json:"segments"`
	FullText string              `json:"full_text"`
	Diarized bool                `json:"diarized"`
	Language string              `json:"language,omitempty"`
}

// FallbackAttempt records one adapter invocation within a chain
type FallbackAttempt struct {
	Provider  string    `json:"provider"`
	Succeeded bool      `json:"succeeded"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty"`
	LatencyMs int64     `json:"latency_ms"`
}

// Result is the normalized outcome of a successful chain
type Result struct {
	Operation  OperationKind
	Provider   string
	Model      string
	Transcript *CanonicalTranscript
	Summary    string
	Attempts   []FallbackAttempt
}
