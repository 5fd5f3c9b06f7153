package routes

import (
	"github.com/gin-gonic/gin"
	"memo-whisper/internal/api/v1/handlers"
	"memo-whisper/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	JobService           services.JobService
	TranscriptionService services.TranscriptionService
	ProviderService      services.ProviderService
	StatsService         services.StatsService
	ExportService        services.ExportService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	jobHandler := handlers.NewJobHandler(container.JobService)
	jobs := router.Group("/jobs")
	{
		jobs.POST("", jobHandler.Create)
		jobs.GET("", jobHandler.List)
		jobs.GET("/:id", jobHandler.Get)
		jobs.DELETE("/:id", jobHandler.Delete)
	}

	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	router.GET("/transcriptions", transcriptionHandler.List)

	providerHandler := handlers.NewProviderHandler(container.ProviderService)
	router.GET("/providers", providerHandler.List)

	if container.StatsService != nil {
		statsHandler := handlers.NewStatsHandler(container.StatsService)
		router.GET("/stats", statsHandler.Get)
	}

	if container.ExportService != nil {
		exportHandler := handlers.NewExportHandler(container.ExportService)
		router.GET("/export", exportHandler.Export)
	}
}
