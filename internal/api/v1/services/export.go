package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/samber/lo"

	"memo-whisper/internal/api/v1/dto"
	"memo-whisper/internal/app/model"
	"memo-whisper/internal/app/repository"
)

// ExportServiceImpl implements ExportService over the DAO.
type ExportServiceImpl struct {
	dao repository.TranscriptionDAO
}

// NewExportService creates a new export service
func NewExportService(dao repository.TranscriptionDAO) *ExportServiceImpl {
	return &ExportServiceImpl{dao: dao}
}

// ExportTranscriptions writes stored records to w in the requested format.
func (s *ExportServiceImpl) ExportTranscriptions(ctx context.Context, query dto.ExportQuery, w io.Writer) error {
	var records []model.Transcription
	var err error

	if query.Project != "" {
		records, err = s.dao.GetAllByProject(query.Project)
		if err == nil && query.Limit > 0 && len(records) > query.Limit {
			records = records[:query.Limit]
		}
	} else {
		records, err = s.dao.GetRecent(query.Limit)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch transcriptions: %w", err)
	}

	switch query.Format {
	case "json":
		return s.exportJSON(records, w)
	default:
		return s.exportCSV(records, w)
	}
}

func (s *ExportServiceImpl) exportCSV(records []model.Transcription, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	header := []string{
		"ID",
		"Project",
		"File Name",
		"Duration Ms",
		"Chunks",
		"Succeeded",
		"Provider",
		"Language",
		"Converted At",
		"Transcript",
		"Error Message",
	}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range records {
		row := []string{
			strconv.Itoa(t.ID),
			t.Project,
			t.FileName,
			strconv.Itoa(t.AudioDurationMs),
			strconv.Itoa(t.ChunkCount),
			strconv.Itoa(t.SuccessCount),
			t.Provider,
			t.Language,
			t.LastConversionTime.Format(time.RFC3339),
			t.Transcript,
			t.ErrorMessage,
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func (s *ExportServiceImpl) exportJSON(records []model.Transcription, w io.Writer) error {
	rows := lo.Map(records, func(t model.Transcription, _ int) dto.TranscriptionResponse {
		return dto.ToTranscriptionResponse(t)
	})

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}
