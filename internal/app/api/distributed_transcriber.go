package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"memo-whisper/internal/app/common"
	temporalcommon "memo-whisper/internal/app/temporal/pkg/common"
)

// DistributedTranscriber submits transcription jobs to Temporal workers.
// It satisfies Transcriber, so a distributed provider plugs into the same
// conversion paths as the in-process backends.
type DistributedTranscriber struct {
	temporalClient client.Client
	taskQueue      string
}

// TranscriptionJob is the caller-facing view of a submitted workflow.
type TranscriptionJob struct {
	ID           string    `json:"id"`
	FilePath     string    `json:"file_path"`
	Status       string    `json:"status"`
	Transcript   string    `json:"transcript,omitempty"`
	ChunkCount   int       `json:"chunk_count,omitempty"`
	SuccessCount int       `json:"success_count,omitempty"`
	Error        string    `json:"error,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
	CompletedAt  time.Time `json:"completed_at,omitempty"`
	WorkflowID   string    `json:"workflow_id"`
}

// NewDistributedTranscriber connects to the Temporal frontend at hostPort.
func NewDistributedTranscriber(hostPort string) (*DistributedTranscriber, error) {
	c, err := client.Dial(client.Options{
		HostPort: hostPort,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Temporal client: %w", err)
	}

	return &DistributedTranscriber{
		temporalClient: c,
		taskQueue:      temporalcommon.DefaultTaskQueue,
	}, nil
}

// Transcript submits the file and blocks until a worker finishes it. This is
// what makes the distributed backend usable behind the Transcriber interface.
func (dt *DistributedTranscriber) Transcript(inputFilePath string, language string) (string, error) {
	ctx := context.Background()

	job, err := dt.SubmitJobWithOptions(ctx, inputFilePath, "", language)
	if err != nil {
		return "", err
	}

	job, err = dt.WaitForResult(ctx, job.WorkflowID)
	if err != nil {
		return "", err
	}
	if job.Status == "failed" {
		return "", fmt.Errorf("distributed transcription failed: %s", job.Error)
	}
	return job.Transcript, nil
}

// SubmitJob submits a single file for transcription with default options.
func (dt *DistributedTranscriber) SubmitJob(ctx context.Context, filePath string) (*TranscriptionJob, error) {
	return dt.SubmitJobWithOptions(ctx, filePath, "", "")
}

// SubmitJobWithOptions submits a single file with an explicit provider and
// language. Empty values fall back to the worker's defaults.
func (dt *DistributedTranscriber) SubmitJobWithOptions(ctx context.Context, filePath, provider, language string) (*TranscriptionJob, error) {
	jobID := uuid.New().String()
	workflowID := fmt.Sprintf("transcribe-%s-%d", jobID, time.Now().Unix())

	request := common.TranscriptionRequest{
		JobID:    jobID,
		FilePath: filePath,
		Provider: provider,
		Language: language,
	}

	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: dt.taskQueue,
	}

	we, err := dt.temporalClient.ExecuteWorkflow(ctx, options, temporalcommon.ChunkedTranscriptionWorkflowName, request)
	if err != nil {
		return nil, fmt.Errorf("failed to start workflow: %w", err)
	}

	return &TranscriptionJob{
		ID:          jobID,
		FilePath:    filePath,
		Status:      "submitted",
		SubmittedAt: time.Now(),
		WorkflowID:  we.GetID(),
	}, nil
}

// GetJobStatus retrieves the current status of a job.
func (dt *DistributedTranscriber) GetJobStatus(ctx context.Context, workflowID string) (*TranscriptionJob, error) {
	desc, err := dt.temporalClient.DescribeWorkflowExecution(ctx, workflowID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to describe workflow: %w", err)
	}

	job := &TranscriptionJob{
		WorkflowID: workflowID,
	}

	if desc.WorkflowExecutionInfo.Status.String() == "Running" {
		job.Status = "processing"
		return job, nil
	}

	job.Status = "completed"
	we := dt.temporalClient.GetWorkflow(ctx, workflowID, "")
	var result common.TranscriptionResult
	if err := we.Get(ctx, &result); err != nil {
		job.Status = "failed"
		job.Error = err.Error()
		return job, nil
	}
	applyResult(job, result)
	return job, nil
}

// WaitForResult blocks until the workflow completes and returns the final
// job state.
func (dt *DistributedTranscriber) WaitForResult(ctx context.Context, workflowID string) (*TranscriptionJob, error) {
	we := dt.temporalClient.GetWorkflow(ctx, workflowID, "")

	var result common.TranscriptionResult
	if err := we.Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("workflow failed: %w", err)
	}

	job := &TranscriptionJob{
		WorkflowID:  workflowID,
		Status:      "completed",
		CompletedAt: time.Now(),
	}
	applyResult(job, result)
	return job, nil
}

// SubmitBatch submits multiple files under one batch workflow.
func (dt *DistributedTranscriber) SubmitBatch(ctx context.Context, filePaths []string, maxParallel int) (*TranscriptionJob, error) {
	batchID := uuid.New().String()
	workflowID := fmt.Sprintf("batch-%s-%d", batchID, time.Now().Unix())

	files := make([]common.TranscriptionRequest, 0, len(filePaths))
	for _, path := range filePaths {
		files = append(files, common.TranscriptionRequest{
			JobID:    uuid.New().String(),
			FilePath: path,
		})
	}

	request := common.BatchRequest{
		BatchID:     batchID,
		Files:       files,
		MaxParallel: maxParallel,
	}

	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: dt.taskQueue,
	}

	we, err := dt.temporalClient.ExecuteWorkflow(ctx, options, temporalcommon.BatchTranscriptionWorkflowName, request)
	if err != nil {
		return nil, fmt.Errorf("failed to start batch workflow: %w", err)
	}

	return &TranscriptionJob{
		ID:          batchID,
		Status:      "submitted",
		SubmittedAt: time.Now(),
		WorkflowID:  we.GetID(),
	}, nil
}

// Close releases the Temporal connection.
func (dt *DistributedTranscriber) Close() {
	if dt.temporalClient != nil {
		dt.temporalClient.Close()
	}
}

func applyResult(job *TranscriptionJob, result common.TranscriptionResult) {
	job.Transcript = result.Transcript
	job.ChunkCount = result.ChunkCount
	job.SuccessCount = result.SuccessCount
	if result.Error != "" {
		job.Status = "failed"
		job.Error = result.Error
	}
}
