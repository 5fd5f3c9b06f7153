package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "memo-whisper/internal/api/errors"
	"memo-whisper/internal/api/middleware"
	"memo-whisper/internal/api/v1/services"
)

// ProviderHandler handles provider-related API endpoints
type ProviderHandler struct {
	service services.ProviderService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(service services.ProviderService) *ProviderHandler {
	return &ProviderHandler{service: service}
}

// List handles GET /api/v1/providers
//
// @Summary List configured providers
// @Description Lists the configured transcription backends, highest priority first
// @Tags providers
// @Produce json
// @Success 200 {object} dto.ProviderListResponse "Configured providers"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /providers [get]
func (h *ProviderHandler) List(c *gin.Context) {
	response, err := h.service.ListProviders(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, apierrors.NewInternalError("Failed to list providers"))
		return
	}

	c.JSON(http.StatusOK, response)
}
