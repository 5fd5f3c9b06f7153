package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"memo-whisper/internal/app/common"
	temporalcommon "memo-whisper/internal/app/temporal/pkg/common"
)

// ChunkedTranscriptionWorkflow transcribes one file through the chunk
// pipeline on a worker. The retry policy covers infrastructure failures of
// the whole file; per-chunk tolerance lives inside the pipeline itself.
func ChunkedTranscriptionWorkflow(ctx workflow.Context, req common.TranscriptionRequest) (common.TranscriptionResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting chunked transcription workflow", "jobId", req.JobID, "file", req.FilePath)

	startTime := workflow.Now(ctx)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		HeartbeatTimeout:    30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    100 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var result common.TranscriptionResult
	err := workflow.ExecuteActivity(ctx, temporalcommon.TranscribeFileActivityName, req).Get(ctx, &result)
	if err != nil {
		logger.Error("Transcription activity failed", "jobId", req.JobID, "error", err)
		return common.TranscriptionResult{
			JobID: req.JobID,
			Error: fmt.Sprintf("transcription failed: %v", err),
		}, err
	}

	result.ProcessingTime = workflow.Now(ctx).Sub(startTime)

	logger.Info("Chunked transcription completed",
		"jobId", req.JobID,
		"provider", result.Provider,
		"chunks", fmt.Sprintf("%d/%d", result.SuccessCount, result.ChunkCount),
		"duration", result.ProcessingTime)

	return result, nil
}
