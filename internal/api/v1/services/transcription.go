package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"memo-whisper/internal/api/v1/dto"
	"memo-whisper/internal/app/model"
	"memo-whisper/internal/app/repository"
)

// TranscriptionServiceImpl implements TranscriptionService over the DAO.
type TranscriptionServiceImpl struct {
	dao repository.TranscriptionDAO
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(dao repository.TranscriptionDAO) *TranscriptionServiceImpl {
	return &TranscriptionServiceImpl{dao: dao}
}

// ListTranscriptions returns stored records, newest first. With a project
// filter the total reflects the whole project even when the limit truncates.
func (s *TranscriptionServiceImpl) ListTranscriptions(ctx context.Context, query dto.ListTranscriptionsQuery) (*dto.TranscriptionListResponse, error) {
	var records []model.Transcription
	var err error
	total := 0

	if query.Project != "" {
		records, err = s.dao.GetAllByProject(query.Project)
		if err == nil {
			total = len(records)
			if query.Limit > 0 && len(records) > query.Limit {
				records = records[:query.Limit]
			}
		}
	} else {
		records, err = s.dao.GetRecent(query.Limit)
		total = len(records)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transcriptions: %w", err)
	}

	responses := lo.Map(records, func(rec model.Transcription, _ int) dto.TranscriptionResponse {
		return dto.ToTranscriptionResponse(rec)
	})

	return &dto.TranscriptionListResponse{
		Transcriptions: responses,
		Total:          total,
	}, nil
}
