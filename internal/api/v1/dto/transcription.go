package dto

import (
	"time"

	"memo-whisper/internal/app/model"
)

// TranscriptionResponse represents a stored transcription in API responses
type TranscriptionResponse struct {
	ID              int       `json:"id"`
	Project         string    `json:"project"`
	FileName        string    `json:"file_name"`
	Status          string    `json:"status"`
	AudioDurationMs int       `json:"audio_duration_ms"`
	ChunkCount      int       `json:"chunk_count"`
	SuccessCount    int       `json:"success_count"`
	Transcript      string    `json:"transcript,omitempty"`
	Provider        string    `json:"provider,omitempty"`
	Language        string    `json:"language,omitempty"`
	ConvertedAt     time.Time `json:"converted_at"`
	Error           string    `json:"error,omitempty"`
}

// TranscriptionListResponse represents a list of stored transcriptions
type TranscriptionListResponse struct {
	Transcriptions []TranscriptionResponse `json:"transcriptions"`
	Total          int                     `json:"total"`
}

// ListTranscriptionsQuery represents query parameters for listing transcriptions
type ListTranscriptionsQuery struct {
	Project string `form:"project"`
	Limit   int    `form:"limit,default=20" binding:"min=1,max=200"`
}

// ToTranscriptionResponse converts a stored record to its API representation.
func ToTranscriptionResponse(t model.Transcription) TranscriptionResponse {
	return TranscriptionResponse{
		ID:              t.ID,
		Project:         t.Project,
		FileName:        t.FileName,
		Status:          DetermineStatus(t),
		AudioDurationMs: t.AudioDurationMs,
		ChunkCount:      t.ChunkCount,
		SuccessCount:    t.SuccessCount,
		Transcript:      t.Transcript,
		Provider:        t.Provider,
		Language:        t.Language,
		ConvertedAt:     t.LastConversionTime,
		Error:           t.ErrorMessage,
	}
}

// DetermineStatus derives the terminal status from the chunk counts. Stored
// records are always finished; in-flight work lives in the job store.
func DetermineStatus(t model.Transcription) string {
	switch {
	case t.SuccessCount == 0:
		return "failed"
	case t.Partial():
		return "partial"
	default:
		return "completed"
	}
}
