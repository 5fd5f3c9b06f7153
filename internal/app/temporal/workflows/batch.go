package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"memo-whisper/internal/app/common"
)

const defaultBatchParallelism = 5

// BatchTranscriptionWorkflow fans the batch out over child workflows, at
// most MaxParallel at a time. Individual failures are collected, never
// propagated, so one broken recording cannot sink the batch.
func BatchTranscriptionWorkflow(ctx workflow.Context, req common.BatchRequest) (common.BatchResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting batch transcription workflow",
		"batchId", req.BatchID,
		"fileCount", len(req.Files),
		"maxParallel", req.MaxParallel)

	startTime := workflow.Now(ctx)

	if req.MaxParallel <= 0 {
		req.MaxParallel = defaultBatchParallelism
	}

	semaphore := workflow.NewBufferedChannel(ctx, req.MaxParallel)
	defer semaphore.Close()
	for i := 0; i < req.MaxParallel; i++ {
		semaphore.Send(ctx, struct{}{})
	}

	resultsChan := workflow.NewBufferedChannel(ctx, len(req.Files))
	defer resultsChan.Close()

	for _, file := range req.Files {
		workflow.Go(ctx, func(ctx workflow.Context) {
			var token struct{}
			semaphore.Receive(ctx, &token)
			defer semaphore.Send(ctx, token)

			childCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
				WorkflowID: fmt.Sprintf("%s-%s", req.BatchID, file.JobID),
				RetryPolicy: &temporal.RetryPolicy{
					InitialInterval:    time.Second,
					BackoffCoefficient: 2.0,
					MaximumInterval:    100 * time.Second,
					MaximumAttempts:    2,
				},
			})

			var result common.TranscriptionResult
			err := workflow.ExecuteChildWorkflow(childCtx, ChunkedTranscriptionWorkflow, file).Get(childCtx, &result)
			if err != nil {
				logger.Error("File transcription failed", "jobId", file.JobID, "error", err)
				result = common.TranscriptionResult{
					JobID: file.JobID,
					Error: err.Error(),
				}
			}

			resultsChan.Send(ctx, result)
		})
	}

	results := make([]common.TranscriptionResult, 0, len(req.Files))
	successCount := 0
	failureCount := 0

	for i := 0; i < len(req.Files); i++ {
		var result common.TranscriptionResult
		resultsChan.Receive(ctx, &result)
		results = append(results, result)

		if result.Error == "" {
			successCount++
		} else {
			failureCount++
		}

		if (i+1)%10 == 0 || i+1 == len(req.Files) {
			logger.Info("Batch progress",
				"completed", i+1,
				"total", len(req.Files),
				"success", successCount,
				"failed", failureCount)
		}
	}

	batchResult := common.BatchResult{
		BatchID:        req.BatchID,
		TotalFiles:     len(req.Files),
		SuccessCount:   successCount,
		FailureCount:   failureCount,
		Results:        results,
		ProcessingTime: workflow.Now(ctx).Sub(startTime),
	}

	logger.Info("Batch transcription completed",
		"batchId", req.BatchID,
		"totalFiles", batchResult.TotalFiles,
		"success", batchResult.SuccessCount,
		"failed", batchResult.FailureCount,
		"duration", batchResult.ProcessingTime)

	return batchResult, nil
}
