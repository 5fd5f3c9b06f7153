package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "memo-whisper/internal/api/errors"
	"memo-whisper/internal/api/middleware"
	"memo-whisper/internal/api/v1/dto"
	"memo-whisper/internal/api/v1/services"
)

// ExportHandler handles transcript export downloads
type ExportHandler struct {
	service services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(service services.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export handles GET /api/v1/export
//
// @Summary Export transcriptions
// @Description Downloads stored transcriptions as CSV or JSON
// @Tags export
// @Produce text/csv,application/json
// @Param project query string false "Filter by project"
// @Param format query string false "Output format" default(csv) Enums(csv,json)
// @Param limit query int false "Maximum rows" default(1000) minimum(1) maximum(10000)
// @Success 200 {string} string "Exported data"
// @Failure 400 {object} errors.APIError "Bad request - invalid query parameters"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	var query dto.ExportQuery

	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Buffered so a mid-export failure still yields a clean error response.
	var buf bytes.Buffer
	if err := h.service.ExportTranscriptions(c.Request.Context(), query, &buf); err != nil {
		middleware.HandleError(c, apierrors.NewInternalError("Failed to export transcriptions"))
		return
	}

	contentType := "text/csv; charset=utf-8"
	ext := "csv"
	if query.Format == "json" {
		contentType = "application/json; charset=utf-8"
		ext = "json"
	}

	fileName := fmt.Sprintf("m2t-export-%s.%s", time.Now().Format("20060102"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
