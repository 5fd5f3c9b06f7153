package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"memo-whisper/internal/api/metrics"
	"memo-whisper/internal/api/v1/dto"
	"memo-whisper/internal/app/model"
)

// ErrFileNotFound is returned when the submitted path does not point at a
// readable file on the server.
var ErrFileNotFound = errors.New("audio file not found")

// FileConverter runs one file through the chunked transcription pipeline.
// *converter.Converter satisfies this.
type FileConverter interface {
	ConvertFile(project string, filePath string) (*model.Transcription, error)
}

// ConverterFactory builds a converter for the requested provider and
// language. An empty provider selects the configured default.
type ConverterFactory func(provider, language string) (FileConverter, error)

const defaultJobProject = "api"

// JobServiceImpl implements JobService over a JobStore. Every accepted job is
// processed on its own goroutine; results land back in the store.
type JobServiceImpl struct {
	store        JobStore
	newConverter ConverterFactory
	archive      Archive
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewJobService creates a job service. archive and m may be nil.
func NewJobService(store JobStore, factory ConverterFactory, archive Archive, m *metrics.Metrics, logger *slog.Logger) *JobServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobServiceImpl{
		store:        store,
		newConverter: factory,
		archive:      archive,
		metrics:      m,
		logger:       logger,
	}
}

// CreateJob validates the file, stores a pending job, and kicks off
// processing in the background.
func (s *JobServiceImpl) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	fi, err := os.Stat(req.FilePath)
	if err != nil || fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, req.FilePath)
	}

	project := req.Project
	if project == "" {
		project = defaultJobProject
	}

	now := time.Now()
	job := &model.TranscriptionJob{
		ID:        uuid.New().String(),
		Project:   project,
		Status:    string(dto.JobStatusPending),
		FileName:  filepath.Base(req.FilePath),
		FilePath:  req.FilePath,
		FileSize:  fi.Size(),
		Provider:  req.Provider,
		Language:  req.Language,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to store job: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordJobCreated()
	}

	s.logger.Info("job accepted",
		"job_id", job.ID, "project", job.Project, "file", job.FileName)

	// The request context dies with the HTTP request; processing must not.
	go s.process(context.Background(), job.ID)

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

// GetJob returns one job by id.
func (s *JobServiceImpl) GetJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToJobResponse(job)
	return &resp, nil
}

// ListJobs returns jobs newest first, filtered by status and project. Total
// counts all matches even when the limit cuts the page short.
func (s *JobServiceImpl) ListJobs(ctx context.Context, query dto.ListJobsQuery) (*dto.JobListResponse, error) {
	jobs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	matches := make([]dto.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		if query.Status != "" && job.Status != query.Status {
			continue
		}
		if query.Project != "" && job.Project != query.Project {
			continue
		}
		matches = append(matches, dto.ToJobResponse(job))
	}

	total := len(matches)
	if query.Limit > 0 && len(matches) > query.Limit {
		matches = matches[:query.Limit]
	}

	return &dto.JobListResponse{Jobs: matches, Total: total}, nil
}

// DeleteJob cancels a running job or removes a finished one.
func (s *JobServiceImpl) DeleteJob(ctx context.Context, id string) error {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	switch job.Status {
	case string(dto.JobStatusPending), string(dto.JobStatusProcessing):
		job.Status = string(dto.JobStatusCancelled)
		job.UpdatedAt = time.Now()
		return s.store.Save(ctx, job)
	default:
		return s.store.Delete(ctx, id)
	}
}

// process runs the conversion for one job and writes the outcome back.
func (s *JobServiceImpl) process(ctx context.Context, jobID string) {
	job, err := s.store.Get(ctx, jobID)
	if err != nil {
		s.logger.Error("job vanished before processing", "job_id", jobID, "error", err)
		return
	}

	now := time.Now()
	job.Status = string(dto.JobStatusProcessing)
	job.StartedAt = &now
	job.UpdatedAt = now
	if err := s.store.Save(ctx, job); err != nil {
		s.logger.Error("failed to mark job processing", "job_id", jobID, "error", err)
		return
	}

	conv, err := s.newConverter(job.Provider, job.Language)
	if err != nil {
		s.finish(ctx, job, nil, fmt.Errorf("failed to build converter: %w", err))
		return
	}

	rec, convErr := conv.ConvertFile(job.Project, job.FilePath)
	s.finish(ctx, job, rec, convErr)
}

// finish records the terminal state. Results of a job cancelled mid-flight
// are discarded.
func (s *JobServiceImpl) finish(ctx context.Context, job *model.TranscriptionJob, rec *model.Transcription, convErr error) {
	cur, err := s.store.Get(ctx, job.ID)
	if err != nil || cur.Status == string(dto.JobStatusCancelled) {
		return
	}

	completedAt := time.Now()
	job.CompletedAt = &completedAt
	job.UpdatedAt = completedAt

	if rec != nil {
		job.AudioDurationMs = rec.AudioDurationMs
		job.ChunkCount = rec.ChunkCount
		job.SuccessCount = rec.SuccessCount
		job.TranscriptionText = rec.Transcript
		job.Error = rec.ErrorMessage
	}

	if convErr != nil || rec == nil || rec.SuccessCount == 0 {
		job.Status = string(dto.JobStatusFailed)
		if convErr != nil {
			job.Error = convErr.Error()
		}
		s.logger.Warn("job failed", "job_id", job.ID, "error", job.Error)
	} else {
		job.Status = string(dto.JobStatusCompleted)
		s.archiveTranscript(ctx, job)
		s.logger.Info("job finished",
			"job_id", job.ID, "chunks", job.ChunkCount, "succeeded", job.SuccessCount)
	}

	if s.metrics != nil {
		var seconds float64
		if job.StartedAt != nil {
			seconds = completedAt.Sub(*job.StartedAt).Seconds()
		}
		s.metrics.RecordJobFinished(job.Status == string(dto.JobStatusCompleted), seconds)
		if rec != nil {
			s.metrics.RecordJobOutput(rec.ChunkCount, rec.SuccessCount, rec.AudioDurationMs)
		}
	}

	if err := s.store.Save(ctx, job); err != nil {
		s.logger.Error("failed to store job result", "job_id", job.ID, "error", err)
	}
}

// archiveTranscript uploads the transcript and records its URL. Archive
// failures only log; the transcript is already in the database.
func (s *JobServiceImpl) archiveTranscript(ctx context.Context, job *model.TranscriptionJob) {
	if s.archive == nil || job.TranscriptionText == "" {
		return
	}

	base := strings.TrimSuffix(job.FileName, filepath.Ext(job.FileName))
	key := fmt.Sprintf("%s/%s-%s.txt", job.Project, job.ID, base)

	url, err := s.archive.Store(ctx, key, job.TranscriptionText)
	if err != nil {
		s.logger.Warn("failed to archive transcript", "job_id", job.ID, "error", err)
		return
	}
	job.ArchiveURL = url
}
