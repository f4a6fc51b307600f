package provider

import (
	"math"
	"strconv"
	"strings"
)

const speakerLabelPrefix = "Speaker "

// summaryQuotePairs maps an opening quote to the closing quote that must
// end the summary for the pair to be stripped
var summaryQuotePairs = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'`':  '`',
	'“':  '”',
	'‘':  '’',
}

// NormalizeTranscript maps provider utterances onto canonical segments.
// Order is kept exactly as received and adjacent utterances are never merged.
func NormalizeTranscript(provider string, raw *RawTranscript) (*CanonicalTranscript, error) {
	if raw == nil {
		return nil, MalformedError(provider, "response carried no transcript", nil)
	}

	segments := make([]TranscriptSegment, 0, len(raw.Utterances))
	for _, utterance := range raw.Utterances {
		text := strings.TrimSpace(utterance.Text)
		if text == "" {
			continue
		}
		segments = append(segments, TranscriptSegment{
			SpeakerLabel:  speakerLabel(utterance.SpeakerID),
			Text:          text,
			StartOffsetMs: toMillis(utterance.Start),
			EndOffsetMs:   toMillis(utterance.End),
		})
	}

	if len(segments) == 0 {
		text := strings.TrimSpace(raw.Text)
		if text == "" {
			return nil, MalformedError(provider, "transcript contained no text", nil)
		}
		segments = append(segments, TranscriptSegment{Text: text})
	}

	transcript := buildTranscript(segments)
	transcript.Language = raw.Language
	return transcript, nil
}

// Renormalize rebuilds a canonical transcript from its own segments.
// Applying it to its own output leaves FullText unchanged.
func Renormalize(transcript *CanonicalTranscript) (*CanonicalTranscript, error) {
	if transcript == nil {
		return nil, MalformedError("normalizer", "transcript is nil", nil)
	}

	raw := &RawTranscript{
		Text:     transcript.FullText,
		Language: transcript.Language,
	}
	for _, segment := range transcript.Segments {
		utterance := RawUtterance{
			Text:  segment.Text,
			Start: fromMillis(segment.StartOffsetMs),
			End:   fromMillis(segment.EndOffsetMs),
		}
		if segment.SpeakerLabel != nil {
			utterance.SpeakerID = *segment.SpeakerLabel
		}
		raw.Utterances = append(raw.Utterances, utterance)
	}
	return NormalizeTranscript("normalizer", raw)
}

// NormalizeSummary trims wrapping whitespace and quotes and folds the summary
// onto a single line.
func NormalizeSummary(provider string, raw string) (string, error) {
	lines := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r'
	})

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}

	summary := strings.Join(kept, " ")
	summary = stripWrappingQuotes(strings.TrimSpace(summary))
	if summary == "" {
		return "", MalformedError(provider, "summary was empty", nil)
	}
	return summary, nil
}

// stripWrappingQuotes removes matching quote pairs around s, repeatedly.
// An unpaired quote at either end is content and is kept.
func stripWrappingQuotes(s string) string {
	for {
		runes := []rune(s)
		if len(runes) < 2 {
			return s
		}
		closing, ok := summaryQuotePairs[runes[0]]
		if !ok || runes[len(runes)-1] != closing {
			return s
		}
		s = strings.TrimSpace(string(runes[1 : len(runes)-1]))
	}
}

func buildTranscript(segments []TranscriptSegment) *CanonicalTranscript {
	texts := make([]string, len(segments))
	diarized := false
	for i, segment := range segments {
		texts[i] = segment.Text
		if segment.SpeakerLabel != nil {
			diarized = true
		}
	}

	return &CanonicalTranscript{
		Segments: segments,
		FullText: strings.Join(texts, "\n"),
		Diarized: diarized,
	}
}

// speakerLabel turns a provider speaker id into "Speaker N"
func speakerLabel(id string) *string {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	var label string
	switch {
	case strings.HasPrefix(id, speakerLabelPrefix):
		label = id
	case strings.HasPrefix(strings.ToLower(id), "speaker_"):
		label = speakerLabelPrefix + id[len("speaker_"):]
	default:
		if n, err := strconv.Atoi(id); err == nil {
			label = speakerLabelPrefix + strconv.Itoa(n)
		} else {
			label = speakerLabelPrefix + id
		}
	}
	return &label
}

func toMillis(seconds *float64) *int64 {
	if seconds == nil {
		return nil
	}
	ms := int64(math.Round(*seconds * 1000))
	return &ms
}

func fromMillis(ms *int64) *float64 {
	if ms == nil {
		return nil
	}
	seconds := float64(*ms) / 1000
	return &seconds
}
