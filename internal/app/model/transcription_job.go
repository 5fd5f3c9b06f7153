package model

import (
	"time"
)

// TranscriptionJob represents an asynchronous transcription job submitted over the API
type TranscriptionJob struct {
	ID                string     `json:"id" db:"id"`
	Project           string     `json:"project" db:"project"`
	Status            string     `json:"status" db:"status"`
	FileName          string     `json:"file_name" db:"file_name"`
	FilePath          string     `json:"file_path" db:"file_path"`
	FileSize          int64      `json:"file_size" db:"file_size"`
	AudioDurationMs   int        `json:"audio_duration_ms" db:"audio_duration_ms"`
	Provider          string     `json:"provider" db:"provider"`
	Language          string     `json:"language" db:"language"`
	ChunkCount        int        `json:"chunk_count" db:"chunk_count"`
	SuccessCount      int        `json:"success_count" db:"success_count"`
	TranscriptionText string     `json:"transcription_text" db:"transcription_text"`
	ArchiveURL        string     `json:"archive_url" db:"archive_url"`
	Error             string     `json:"error" db:"error"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
	StartedAt         *time.Time `json:"started_at" db:"started_at"`
	CompletedAt       *time.Time `json:"completed_at" db:"completed_at"`
}

// JobPartial reports whether the job finished with gaps in the transcript.
func (j *TranscriptionJob) JobPartial() bool {
	return j.SuccessCount > 0 && j.SuccessCount < j.ChunkCount
}
