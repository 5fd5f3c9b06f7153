package dto

import (
	"strings"
	"time"

	"memo-whisper/internal/api/errors"
	"memo-whisper/internal/app/model"
)

// JobStatus represents the lifecycle state of an asynchronous job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// CreateJobRequest submits one audio file for asynchronous transcription.
// FilePath must point at a file reachable from the server.
type CreateJobRequest struct {
	FilePath string `json:"file_path" binding:"required"`
	Project  string `json:"project,omitempty"`
	Provider string `json:"provider,omitempty"`
	Language string `json:"language,omitempty"`
}

// Validate performs domain-specific validation
func (r *CreateJobRequest) Validate() error {
	validationErrors := make(map[string]string)

	if strings.TrimSpace(r.FilePath) == "" {
		validationErrors["file_path"] = "file path is required"
	}

	// Project names become directory names, so path separators are out.
	if strings.ContainsAny(r.Project, `/\`) {
		validationErrors["project"] = "must not contain path separators"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid job request", validationErrors)
	}

	return nil
}

// JobResponse represents a transcription job in API responses
type JobResponse struct {
	ID              string     `json:"id"`
	Project         string     `json:"project"`
	Status          string     `json:"status"`
	FileName        string     `json:"file_name"`
	FilePath        string     `json:"file_path"`
	FileSize        int64      `json:"file_size,omitempty"`
	AudioDurationMs int        `json:"audio_duration_ms,omitempty"`
	Provider        string     `json:"provider,omitempty"`
	Language        string     `json:"language,omitempty"`
	ChunkCount      int        `json:"chunk_count,omitempty"`
	SuccessCount    int        `json:"success_count,omitempty"`
	Partial         bool       `json:"partial,omitempty"`
	Transcript      string     `json:"transcript,omitempty"`
	ArchiveURL      string     `json:"archive_url,omitempty"`
	Error           string     `json:"error,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// JobListResponse represents a list of jobs
type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Total int           `json:"total"`
}

// ListJobsQuery represents query parameters for listing jobs
type ListJobsQuery struct {
	Status  string `form:"status" binding:"omitempty,oneof=pending processing completed failed cancelled"`
	Project string `form:"project"`
	Limit   int    `form:"limit,default=50" binding:"min=1,max=500"`
}

// ToJobResponse converts the job model to its API representation.
func ToJobResponse(j *model.TranscriptionJob) JobResponse {
	return JobResponse{
		ID:              j.ID,
		Project:         j.Project,
		Status:          j.Status,
		FileName:        j.FileName,
		FilePath:        j.FilePath,
		FileSize:        j.FileSize,
		AudioDurationMs: j.AudioDurationMs,
		Provider:        j.Provider,
		Language:        j.Language,
		ChunkCount:      j.ChunkCount,
		SuccessCount:    j.SuccessCount,
		Partial:         j.JobPartial(),
		Transcript:      j.TranscriptionText,
		ArchiveURL:      j.ArchiveURL,
		Error:           j.Error,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
		StartedAt:       j.StartedAt,
		CompletedAt:     j.CompletedAt,
	}
}
