package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tealeg/xlsx"

	"memo-whisper/internal/app/model"
)

var excelHeader = []string{"ID", "Project", "File Name", "Duration", "Chunks", "Provider", "Language", "Converted At", "Transcript", "Error Message"}

// ToExcel writes transcriptions to an xlsx workbook, one row per record.
func ToExcel(transcriptions []model.Transcription, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range excelHeader {
		headerRow.AddCell().Value = h
	}

	for _, t := range transcriptions {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(t.ID)
		row.AddCell().Value = t.Project
		row.AddCell().Value = t.FileName
		row.AddCell().Value = formatDuration(t.AudioDurationMs)
		row.AddCell().Value = fmt.Sprintf("%d/%d", t.SuccessCount, t.ChunkCount)
		row.AddCell().Value = t.Provider
		row.AddCell().Value = t.Language
		row.AddCell().Value = t.LastConversionTime.Format(time.RFC3339)
		row.AddCell().Value = t.Transcript
		row.AddCell().Value = t.ErrorMessage
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputFilePath, err)
	}
	return nil
}

// ToText writes the transcripts as one plain text document, each prefixed
// with a header naming the source recording.
func ToText(transcriptions []model.Transcription, outputFilePath string) error {
	var b strings.Builder
	for i, t := range transcriptions {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "# %s (%s, %s)\n\n", t.FileName, t.Project, t.LastConversionTime.Format("2006-01-02"))
		b.WriteString(strings.TrimSpace(t.Transcript))
	}
	b.WriteString("\n")

	if err := os.WriteFile(outputFilePath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFilePath, err)
	}
	return nil
}

func formatDuration(ms int) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
}
