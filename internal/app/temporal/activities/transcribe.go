package activities

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"

	"memo-whisper/internal/app/common"
	"memo-whisper/internal/app/converter"
	"memo-whisper/internal/app/model"
)

// ConverterFactory builds a converter for the requested provider and
// language. Requests with an empty provider get the configured default.
type ConverterFactory func(providerName, language string) (*converter.Converter, error)

// TranscribeActivities runs whole-file conversions as Temporal activities.
type TranscribeActivities struct {
	newConverter ConverterFactory
}

func NewTranscribeActivities(factory ConverterFactory) *TranscribeActivities {
	return &TranscribeActivities{newConverter: factory}
}

// TranscribeFile converts one file through the chunk pipeline and records the
// outcome. The conversion runs in its own goroutine so heartbeats keep
// flowing during long files.
func (a *TranscribeActivities) TranscribeFile(ctx context.Context, req common.TranscriptionRequest) (common.TranscriptionResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Starting transcription", "jobId", req.JobID, "file", req.FilePath, "provider", req.Provider)

	activity.RecordHeartbeat(ctx, fmt.Sprintf("processing %s", req.FilePath))
	startTime := time.Now()

	conv, err := a.newConverter(req.Provider, req.Language)
	if err != nil {
		logger.Error("Failed to build converter", "error", err)
		return common.TranscriptionResult{JobID: req.JobID, Error: err.Error()}, err
	}

	done := make(chan struct{})
	var rec *model.Transcription
	var convErr error
	go func() {
		rec, convErr = conv.ConvertFile(req.Project, req.FilePath)
		close(done)
	}()

	heartbeatTicker := time.NewTicker(10 * time.Second)
	defer heartbeatTicker.Stop()

	for {
		select {
		case <-done:
			result := common.TranscriptionResult{
				JobID:          req.JobID,
				Provider:       req.Provider,
				ProcessingTime: time.Since(startTime),
			}
			if rec != nil {
				result.Transcript = rec.Transcript
				result.AudioDurationMs = rec.AudioDurationMs
				result.ChunkCount = rec.ChunkCount
				result.SuccessCount = rec.SuccessCount
			}
			if convErr != nil {
				logger.Error("Transcription failed", "jobId", req.JobID, "error", convErr)
				result.Error = convErr.Error()
				return result, convErr
			}

			logger.Info("Transcription completed",
				"jobId", req.JobID,
				"chunks", fmt.Sprintf("%d/%d", result.SuccessCount, result.ChunkCount),
				"duration", result.ProcessingTime)
			return result, nil

		case <-heartbeatTicker.C:
			activity.RecordHeartbeat(ctx, fmt.Sprintf("still processing %s", req.FilePath))

		case <-ctx.Done():
			return common.TranscriptionResult{
				JobID: req.JobID,
				Error: "activity cancelled",
			}, ctx.Err()
		}
	}
}
