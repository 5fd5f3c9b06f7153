package common

import "time"

// TranscriptionRequest is one file handed to the distributed pipeline.
type TranscriptionRequest struct {
	JobID    string `json:"job_id"`
	FilePath string `json:"file_path"`
	Project  string `json:"project"`
	Provider string `json:"provider"`
	Language string `json:"language"`
}

// TranscriptionResult carries the converter outcome back across the wire.
// SuccessCount below ChunkCount marks a partial transcript.
type TranscriptionResult struct {
	JobID           string        `json:"job_id"`
	Transcript      string        `json:"transcript"`
	Provider        string        `json:"provider"`
	AudioDurationMs int           `json:"audio_duration_ms"`
	ChunkCount      int           `json:"chunk_count"`
	SuccessCount    int           `json:"success_count"`
	ProcessingTime  time.Duration `json:"processing_time"`
	Error           string        `json:"error,omitempty"`
}

// BatchRequest groups files transcribed under one batch workflow.
type BatchRequest struct {
	BatchID     string                 `json:"batch_id"`
	Files       []TranscriptionRequest `json:"files"`
	MaxParallel int                    `json:"max_parallel"`
}

// BatchResult summarizes a batch workflow run.
type BatchResult struct {
	BatchID        string                `json:"batch_id"`
	TotalFiles     int                   `json:"total_files"`
	SuccessCount   int                   `json:"success_count"`
	FailureCount   int                   `json:"failure_count"`
	Results        []TranscriptionResult `json:"results"`
	ProcessingTime time.Duration         `json:"processing_time"`
}
