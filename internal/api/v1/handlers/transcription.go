package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "memo-whisper/internal/api/errors"
	"memo-whisper/internal/api/middleware"
	"memo-whisper/internal/api/v1/dto"
	"memo-whisper/internal/api/v1/services"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{service: service}
}

// List handles GET /api/v1/transcriptions
//
// @Summary List stored transcriptions
// @Description Lists finished transcriptions from the database, newest first, optionally filtered by project
// @Tags transcriptions
// @Produce json
// @Param project query string false "Filter by project"
// @Param limit query int false "Maximum rows" default(20) minimum(1) maximum(200)
// @Success 200 {object} dto.TranscriptionListResponse "List of transcriptions"
// @Failure 400 {object} errors.APIError "Bad request - invalid query parameters"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Header 200 {string} X-Total-Count "Total number of transcriptions"
// @Router /transcriptions [get]
func (h *TranscriptionHandler) List(c *gin.Context) {
	var query dto.ListTranscriptionsQuery

	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.ListTranscriptions(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, apierrors.NewInternalError("Failed to list transcriptions"))
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(response.Total))
	c.JSON(http.StatusOK, response)
}
