package serve

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"memo-whisper/internal/api/metrics"
	"memo-whisper/internal/api/server"
	v1routes "memo-whisper/internal/api/v1/routes"
	"memo-whisper/internal/api/v1/services"
	"memo-whisper/internal/app"
	appconfig "memo-whisper/internal/app/config"
	"memo-whisper/internal/app/converter"
	envcfg "memo-whisper/internal/config"
)

var (
	host        string
	port        string
	environment string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "0.0.0.0", "Listen address")
	Cmd.Flags().StringVar(&port, "port", "", "Listen port (default HTTP_PORT or 8080)")
	Cmd.Flags().StringVar(&environment, "env", "development",
		"Runtime environment: development or production")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcription HTTP API",
	Long: `Run the transcription HTTP API.

- Accepts asynchronous transcription jobs and serves stored results
- REDIS_ADDR moves job state into redis so it survives restarts
- MINIO_ENDPOINT enables transcript archiving to object storage`,
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func runServer() {
	logger := newLogger()
	ctx := context.Background()

	if port == "" {
		port = envcfg.GetNetworkConfig().HTTPPort
	}

	providersCfg, err := appconfig.LoadProvidersConfigOrDefault()
	if err != nil {
		log.Fatalf("Failed to load provider configuration: %v\n", err)
	}

	dao := app.InitializeTranscriptionDAO()
	defer dao.Close()

	store := app.InitializeProjectStore()

	var jobStore services.JobStore
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisStore, err := services.NewRedisJobStore(ctx, addr)
		if err != nil {
			log.Fatalf("Failed to connect to redis at %s: %v\n", addr, err)
		}
		defer redisStore.Close()
		jobStore = redisStore
		logger.Info("job state in redis", "addr", addr)
	} else {
		jobStore = services.NewMemoryJobStore()
		logger.Info("job state in memory, gone on restart")
	}

	var archive services.Archive
	if os.Getenv("MINIO_ENDPOINT") != "" {
		minioArchive, err := services.NewMinioArchive(ctx, services.MinioArchiveConfigFromEnv())
		if err != nil {
			log.Fatalf("Failed to set up transcript archive: %v\n", err)
		}
		archive = minioArchive
		logger.Info("archiving transcripts to MinIO")
	}

	registry := metrics.NewRegistry()
	m := metrics.NewMetrics(registry)

	factory := func(providerName, language string) (services.FileConverter, error) {
		transcriber, err := appconfig.NewTranscriber(providersCfg, providerName)
		if err != nil {
			return nil, err
		}
		if providerName == "" {
			providerName = providersCfg.DefaultProvider
		}
		return converter.NewConverter(transcriber, dao,
			converter.WithProviderName(providerName),
			converter.WithLanguage(language),
			converter.WithProjectStore(store),
		), nil
	}

	container := &v1routes.ServiceContainer{
		JobService:           services.NewJobService(jobStore, factory, archive, m, logger),
		TranscriptionService: services.NewTranscriptionService(dao),
		ProviderService:      services.NewProviderService(providersCfg),
		StatsService:         services.NewStatsService(dao, jobStore),
		ExportService:        services.NewExportService(dao),
	}

	cfg := server.DefaultConfig(port)
	cfg.Host = host
	cfg.Environment = environment

	srv := server.NewServer(cfg, container, m, registry, logger)
	errCh := srv.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server error: %v\n", err)
		}
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
