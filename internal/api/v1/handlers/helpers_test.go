package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"memo-whisper/internal/api/middleware"
	"memo-whisper/internal/api/v1/dto"
	"memo-whisper/internal/api/v1/routes"
)

type fakeJobService struct {
	createFunc func(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	getFunc    func(ctx context.Context, id string) (*dto.JobResponse, error)
	listFunc   func(ctx context.Context, query dto.ListJobsQuery) (*dto.JobListResponse, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (f *fakeJobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if f.createFunc == nil {
		return nil, errors.New("unexpected CreateJob call")
	}
	return f.createFunc(ctx, req)
}

func (f *fakeJobService) GetJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	if f.getFunc == nil {
		return nil, errors.New("unexpected GetJob call")
	}
	return f.getFunc(ctx, id)
}

func (f *fakeJobService) ListJobs(ctx context.Context, query dto.ListJobsQuery) (*dto.JobListResponse, error) {
	if f.listFunc == nil {
		return nil, errors.New("unexpected ListJobs call")
	}
	return f.listFunc(ctx, query)
}

func (f *fakeJobService) DeleteJob(ctx context.Context, id string) error {
	if f.deleteFunc == nil {
		return errors.New("unexpected DeleteJob call")
	}
	return f.deleteFunc(ctx, id)
}

type fakeTranscriptionService struct {
	listFunc func(ctx context.Context, query dto.ListTranscriptionsQuery) (*dto.TranscriptionListResponse, error)
}

func (f *fakeTranscriptionService) ListTranscriptions(ctx context.Context, query dto.ListTranscriptionsQuery) (*dto.TranscriptionListResponse, error) {
	if f.listFunc == nil {
		return nil, errors.New("unexpected ListTranscriptions call")
	}
	return f.listFunc(ctx, query)
}

type fakeProviderService struct {
	listFunc func(ctx context.Context) (*dto.ProviderListResponse, error)
}

func (f *fakeProviderService) ListProviders(ctx context.Context) (*dto.ProviderListResponse, error) {
	if f.listFunc == nil {
		return nil, errors.New("unexpected ListProviders call")
	}
	return f.listFunc(ctx)
}

type fakeStatsService struct {
	getFunc func(ctx context.Context) (*dto.StatsResponse, error)
}

func (f *fakeStatsService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	if f.getFunc == nil {
		return nil, errors.New("unexpected GetStats call")
	}
	return f.getFunc(ctx)
}

type fakeExportService struct {
	exportFunc func(ctx context.Context, query dto.ExportQuery, w io.Writer) error
}

func (f *fakeExportService) ExportTranscriptions(ctx context.Context, query dto.ExportQuery, w io.Writer) error {
	if f.exportFunc == nil {
		return errors.New("unexpected ExportTranscriptions call")
	}
	return f.exportFunc(ctx, query, w)
}

func setupRouter(container *routes.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	routes.RegisterRoutes(router.Group("/api/v1"), container)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
