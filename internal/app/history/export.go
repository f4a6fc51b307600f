package history

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"
)

// ExportXLSX writes entries to a single-sheet spreadsheet at outputFilePath
func ExportXLSX(entries []Entry, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("History")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, title := range []string{"ID", "Type", "Timestamp", "Source", "Summary", "Transcription", "Original Text", "Transcription Provider", "Summary Provider"} {
		headerRow.AddCell().Value = title
	}

	for _, e := range entries {
		row := sheet.AddRow()
		row.AddCell().Value = e.ID
		row.AddCell().Value = string(e.Type)
		row.AddCell().Value = e.Timestamp.UTC().Format(time.RFC3339)
		row.AddCell().Value = e.SourceName
		row.AddCell().Value = e.Summary
		row.AddCell().Value = e.Transcription
		row.AddCell().Value = e.OriginalText
		row.AddCell().Value = e.TranscriptionProvider
		row.AddCell().Value = e.SummaryProvider
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save %s: %w", outputFilePath, err)
	}
	return nil
}
