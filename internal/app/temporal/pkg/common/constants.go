package common

import "os"

const (
	DefaultTaskQueue = "m2t-transcription-queue"
	DefaultNamespace = "default"

	DefaultTemporalHost  = "127.0.0.1:7233"
	DefaultMinIOEndpoint = "localhost:9000"

	DefaultMinIOAccessKey = "minioadmin"
	DefaultMinIOSecretKey = "minioadmin"
	DefaultMinIOBucket    = "m2t-transcripts"
)

// Workflow and activity names as registered on the task queue.
const (
	ChunkedTranscriptionWorkflowName = "ChunkedTranscriptionWorkflow"
	BatchTranscriptionWorkflowName   = "BatchTranscriptionWorkflow"
	TranscribeFileActivityName       = "TranscribeFile"
)

// GetEnv returns the environment variable or the default when unset.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
