package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "memo-whisper/internal/api/errors"
	"memo-whisper/internal/api/middleware"
	"memo-whisper/internal/api/v1/dto"
	"memo-whisper/internal/api/v1/services"
)

// JobHandler handles job-related API endpoints
type JobHandler struct {
	service services.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(service services.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /api/v1/jobs
//
// @Summary Submit a transcription job
// @Description Submits a server-local audio file for asynchronous chunked transcription
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body dto.CreateJobRequest true "Job submission"
// @Success 201 {object} dto.JobResponse "Job accepted"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			middleware.HandleError(c, apierrors.NewValidationError("Invalid job request",
				map[string]string{"file_path": "file does not exist"}))
			return
		}
		middleware.HandleError(c, apierrors.NewInternalError("Failed to create job"))
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get handles GET /api/v1/jobs/:id
//
// @Summary Get job by ID
// @Description Returns the current state of one transcription job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse "Job details"
// @Failure 404 {object} errors.APIError "Job not found"
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	response, err := h.service.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			middleware.HandleError(c, apierrors.NewNotFoundError("job"))
			return
		}
		middleware.HandleError(c, apierrors.NewInternalError("Failed to get job"))
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/jobs
//
// @Summary List jobs
// @Description Lists jobs newest first with optional status and project filters
// @Tags jobs
// @Produce json
// @Param status query string false "Filter by status" Enums(pending,processing,completed,failed,cancelled)
// @Param project query string false "Filter by project"
// @Param limit query int false "Maximum rows" default(50) minimum(1) maximum(500)
// @Success 200 {object} dto.JobListResponse "List of jobs"
// @Failure 400 {object} errors.APIError "Bad request - invalid query parameters"
// @Header 200 {string} X-Total-Count "Total number of matching jobs"
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	var query dto.ListJobsQuery

	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.ListJobs(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, apierrors.NewInternalError("Failed to list jobs"))
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(response.Total))
	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/v1/jobs/:id
//
// @Summary Cancel or delete a job
// @Description Cancels a pending or running job; removes a finished one
// @Tags jobs
// @Param id path string true "Job ID"
// @Success 204 "Job cancelled or removed"
// @Failure 404 {object} errors.APIError "Job not found"
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			middleware.HandleError(c, apierrors.NewNotFoundError("job"))
			return
		}
		middleware.HandleError(c, apierrors.NewInternalError("Failed to delete job"))
		return
	}

	c.Status(http.StatusNoContent)
}
