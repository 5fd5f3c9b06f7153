package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-whisper/internal/api/v1/dto"
	"memo-whisper/internal/api/v1/routes"
	"memo-whisper/internal/api/v1/services"
)

func TestJobHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		request        dto.CreateJobRequest
		createFunc     func(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name: "job accepted",
			request: dto.CreateJobRequest{
				FilePath: "/audio/standup.m4a",
				Project:  "weekly",
				Provider: "openai",
			},
			createFunc: func(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
				return &dto.JobResponse{
					ID:        "job-1",
					Project:   req.Project,
					Status:    string(dto.JobStatusPending),
					FileName:  "standup.m4a",
					FilePath:  req.FilePath,
					Provider:  req.Provider,
					CreatedAt: time.Now(),
				}, nil
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "job-1", body["id"])
				assert.Equal(t, "pending", body["status"])
				assert.Equal(t, "weekly", body["project"])
				assert.Equal(t, "standup.m4a", body["file_name"])
			},
		},
		{
			name:           "missing file path",
			request:        dto.CreateJobRequest{Project: "weekly"},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "validation", body["kind"])
				assert.NotEmpty(t, body["details"])
			},
		},
		{
			name: "project with path separator",
			request: dto.CreateJobRequest{
				FilePath: "/audio/standup.m4a",
				Project:  "weekly/evil",
			},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "validation", body["kind"])
				details, ok := body["details"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "must not contain path separators", details["project"])
			},
		},
		{
			name: "file does not exist",
			request: dto.CreateJobRequest{
				FilePath: "/audio/missing.m4a",
			},
			createFunc: func(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
				return nil, fmt.Errorf("%w: %s", services.ErrFileNotFound, req.FilePath)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "validation", body["kind"])
				details, ok := body["details"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "file does not exist", details["file_path"])
			},
		},
		{
			name: "service failure",
			request: dto.CreateJobRequest{
				FilePath: "/audio/standup.m4a",
			},
			createFunc: func(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
				return nil, errors.New("store unreachable")
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "internal", body["kind"])
				assert.Equal(t, "Failed to create job", body["message"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&routes.ServiceContainer{
				JobService: &fakeJobService{createFunc: tt.createFunc},
			})

			w := doRequest(t, router, http.MethodPost, "/api/v1/jobs", tt.request)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.validateBody(t, decodeBody(t, w))
		})
	}
}

func TestJobHandler_Get(t *testing.T) {
	completedAt := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	t.Run("existing job", func(t *testing.T) {
		router := setupRouter(&routes.ServiceContainer{
			JobService: &fakeJobService{
				getFunc: func(ctx context.Context, id string) (*dto.JobResponse, error) {
					require.Equal(t, "job-42", id)
					return &dto.JobResponse{
						ID:           "job-42",
						Status:       string(dto.JobStatusCompleted),
						FileName:     "retro.mp3",
						ChunkCount:   3,
						SuccessCount: 3,
						Transcript:   "we shipped it",
						CompletedAt:  &completedAt,
					}, nil
				},
			},
		})

		w := doRequest(t, router, http.MethodGet, "/api/v1/jobs/job-42", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "job-42", body["id"])
		assert.Equal(t, "completed", body["status"])
		assert.Equal(t, "we shipped it", body["transcript"])
	})

	t.Run("unknown job", func(t *testing.T) {
		router := setupRouter(&routes.ServiceContainer{
			JobService: &fakeJobService{
				getFunc: func(ctx context.Context, id string) (*dto.JobResponse, error) {
					return nil, services.ErrJobNotFound
				},
			},
		})

		w := doRequest(t, router, http.MethodGet, "/api/v1/jobs/nope", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "not_found", body["kind"])
		assert.Equal(t, "job not found", body["message"])
	})
}

func TestJobHandler_List(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var seen dto.ListJobsQuery
		router := setupRouter(&routes.ServiceContainer{
			JobService: &fakeJobService{
				listFunc: func(ctx context.Context, query dto.ListJobsQuery) (*dto.JobListResponse, error) {
					seen = query
					return &dto.JobListResponse{
						Jobs: []dto.JobResponse{
							{ID: "job-2", Status: "processing"},
							{ID: "job-1", Status: "completed"},
						},
						Total: 2,
					}, nil
				},
			},
		})

		w := doRequest(t, router, http.MethodGet, "/api/v1/jobs", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 50, seen.Limit)
		assert.Empty(t, seen.Status)
		assert.Equal(t, "2", w.Header().Get("X-Total-Count"))

		body := decodeBody(t, w)
		jobs, ok := body["jobs"].([]interface{})
		require.True(t, ok)
		assert.Len(t, jobs, 2)
	})

	t.Run("filters forwarded", func(t *testing.T) {
		var seen dto.ListJobsQuery
		router := setupRouter(&routes.ServiceContainer{
			JobService: &fakeJobService{
				listFunc: func(ctx context.Context, query dto.ListJobsQuery) (*dto.JobListResponse, error) {
					seen = query
					return &dto.JobListResponse{Jobs: []dto.JobResponse{}, Total: 0}, nil
				},
			},
		})

		w := doRequest(t, router, http.MethodGet, "/api/v1/jobs?status=failed&project=weekly&limit=5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "failed", seen.Status)
		assert.Equal(t, "weekly", seen.Project)
		assert.Equal(t, 5, seen.Limit)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		router := setupRouter(&routes.ServiceContainer{
			JobService: &fakeJobService{},
		})

		w := doRequest(t, router, http.MethodGet, "/api/v1/jobs?status=exploded", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "bad_request", body["kind"])
	})

	t.Run("limit out of range rejected", func(t *testing.T) {
		router := setupRouter(&routes.ServiceContainer{
			JobService: &fakeJobService{},
		})

		w := doRequest(t, router, http.MethodGet, "/api/v1/jobs?limit=50000", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestJobHandler_Delete(t *testing.T) {
	t.Run("existing job", func(t *testing.T) {
		var deleted string
		router := setupRouter(&routes.ServiceContainer{
			JobService: &fakeJobService{
				deleteFunc: func(ctx context.Context, id string) error {
					deleted = id
					return nil
				},
			},
		})

		w := doRequest(t, router, http.MethodDelete, "/api/v1/jobs/job-7", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "job-7", deleted)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("unknown job", func(t *testing.T) {
		router := setupRouter(&routes.ServiceContainer{
			JobService: &fakeJobService{
				deleteFunc: func(ctx context.Context, id string) error {
					return services.ErrJobNotFound
				},
			},
		})

		w := doRequest(t, router, http.MethodDelete, "/api/v1/jobs/nope", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
