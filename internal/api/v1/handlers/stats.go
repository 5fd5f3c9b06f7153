package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "memo-whisper/internal/api/errors"
	"memo-whisper/internal/api/middleware"
	"memo-whisper/internal/api/v1/services"
)

// StatsHandler handles statistics API endpoints
type StatsHandler struct {
	service services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get handles GET /api/v1/stats
//
// @Summary Get transcription statistics
// @Description Aggregates stored transcription counts, audio volume, and the live job queue
// @Tags stats
// @Produce json
// @Success 200 {object} dto.StatsResponse "Aggregated statistics"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	response, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, apierrors.NewInternalError("Failed to get statistics"))
		return
	}

	c.JSON(http.StatusOK, response)
}
