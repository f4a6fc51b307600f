// Package docparse extracts plain text from uploaded documents and
// classifies upload names by extension.
package docparse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"briefly/internal/app/api/provider"
	apperrors "briefly/internal/app/errors"
)

var documentExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".json": true,
	".md":   true,
	".csv":  true,
	".log":  true,
	".html": true,
	".htm":  true,
}

// DocumentExtensions lists accepted document extensions in display order
func DocumentExtensions() []string {
	return []string{".pdf", ".txt", ".json", ".md", ".csv", ".log", ".html", ".htm"}
}

// AudioExtensions lists accepted audio extensions in display order
func AudioExtensions() []string {
	return []string{".mp3", ".wav", ".m4a", ".ogg", ".webm", ".mp4"}
}

// IsAllowedDocument reports whether name has an accepted document extension
func IsAllowedDocument(name string) bool {
	return documentExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsAllowedAudio reports whether name has an accepted audio extension
func IsAllowedAudio(name string) bool {
	return provider.GetAudioFormatFromFilename(name) != ""
}

// MimeForAudio returns the upstream content type for an audio file name
func MimeForAudio(name string) string {
	return provider.GetAudioFormatFromFilename(name).MimeType()
}

// ExtractText returns the text content of a document. The result is trimmed;
// an empty result is not an error here.
func ExtractText(fileName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !documentExtensions[ext] {
		return "", apperrors.Wrapf(apperrors.ErrUnsupportedDocument, "%s", fileName)
	}

	switch ext {
	case ".pdf":
		return extractPDF(data)
	case ".json":
		return extractJSON(data)
	case ".html", ".htm":
		return extractHTML(data)
	default:
		return strings.TrimSpace(toValidUTF8(data)), nil
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to open PDF")
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", apperrors.Wrap(err, "failed to extract PDF text")
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", apperrors.Wrap(err, "failed to read PDF text")
	}
	return strings.TrimSpace(toValidUTF8(buf.Bytes())), nil
}

// extractJSON re-indents objects and arrays with two spaces. Scalars are
// returned in their plain form.
func extractJSON(data []byte) (string, error) {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return "", apperrors.Wrap(err, "invalid JSON document")
	}

	switch v := value.(type) {
	case map[string]interface{}, []interface{}:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", apperrors.Wrap(err, "failed to format JSON document")
		}
		return string(out), nil
	case string:
		return strings.TrimSpace(v), nil
	case nil:
		return "", nil
	default:
		return fmt.Sprint(v), nil
	}
}

// extractHTML returns the visible text of the body with whitespace collapsed
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to parse HTML")
	}

	doc.Find("script, style, noscript, template").Remove()

	var lines []string
	doc.Find("title, h1, h2, h3, h4, h5, h6, p, li, td, th, pre, blockquote").Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered("p, li, td, th, pre, blockquote").Length() > 0 {
			return
		}
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			lines = append(lines, text)
		}
	})

	if len(lines) == 0 {
		return strings.Join(strings.Fields(doc.Text()), " "), nil
	}
	return strings.Join(lines, "\n"), nil
}

func toValidUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}
