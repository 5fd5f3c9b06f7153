package services

import (
	"context"
	"io"

	"memo-whisper/internal/api/v1/dto"
)

// JobService manages asynchronous transcription jobs.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(ctx context.Context, id string) (*dto.JobResponse, error)
	ListJobs(ctx context.Context, query dto.ListJobsQuery) (*dto.JobListResponse, error)
	DeleteJob(ctx context.Context, id string) error
}

// TranscriptionService reads finished transcriptions from the database.
type TranscriptionService interface {
	ListTranscriptions(ctx context.Context, query dto.ListTranscriptionsQuery) (*dto.TranscriptionListResponse, error)
}

// ProviderService lists the configured transcription backends.
type ProviderService interface {
	ListProviders(ctx context.Context) (*dto.ProviderListResponse, error)
}

// StatsService aggregates transcription statistics.
type StatsService interface {
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

// ExportService streams stored transcriptions in a download format.
type ExportService interface {
	ExportTranscriptions(ctx context.Context, query dto.ExportQuery, w io.Writer) error
}
