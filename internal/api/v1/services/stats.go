package services

import (
	"context"
	"fmt"
	"math"

	"memo-whisper/internal/api/v1/dto"
	"memo-whisper/internal/app/repository"
)

// StatsServiceImpl implements StatsService over the DAO and the job store.
type StatsServiceImpl struct {
	dao   repository.TranscriptionDAO
	store JobStore
}

// NewStatsService creates a new stats service. store may be nil when the
// server runs without a job queue.
func NewStatsService(dao repository.TranscriptionDAO, store JobStore) *StatsServiceImpl {
	return &StatsServiceImpl{dao: dao, store: store}
}

// GetStats aggregates the stored transcriptions and the live job queue.
func (s *StatsServiceImpl) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	st, err := s.dao.GetStatistics()
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	hours := float64(st.TotalDurationMs) / float64(60*60*1000)
	resp := &dto.StatsResponse{
		TotalTranscriptions: st.TotalCount,
		// SuccessCount includes partials, which get their own column.
		Completed:       st.SuccessCount - st.PartialCount,
		Partial:         st.PartialCount,
		Failed:          st.FailedCount,
		Projects:        st.ProjectCount,
		TotalAudioMs:    st.TotalDurationMs,
		TotalAudioHours: math.Round(hours*100) / 100,
	}

	if s.store != nil {
		jobs, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list jobs: %w", err)
		}
		for _, job := range jobs {
			switch job.Status {
			case string(dto.JobStatusPending):
				resp.Jobs.Pending++
			case string(dto.JobStatusProcessing):
				resp.Jobs.Processing++
			case string(dto.JobStatusCompleted):
				resp.Jobs.Completed++
			case string(dto.JobStatusFailed):
				resp.Jobs.Failed++
			case string(dto.JobStatusCancelled):
				resp.Jobs.Cancelled++
			}
		}
	}

	return resp, nil
}
