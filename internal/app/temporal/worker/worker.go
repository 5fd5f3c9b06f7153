package worker

import (
	"fmt"
	"os"

	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	appconfig "memo-whisper/internal/app/config"
	"memo-whisper/internal/app/converter"
	"memo-whisper/internal/app/project"
	"memo-whisper/internal/app/repository"
	"memo-whisper/internal/app/repository/sqlite"
	"memo-whisper/internal/app/temporal/activities"
	temporalcommon "memo-whisper/internal/app/temporal/pkg/common"
	"memo-whisper/internal/app/temporal/workflows"
	"memo-whisper/internal/config"
)

// Options configures a worker run.
type Options struct {
	// HealthPort is the listen address for the health server, e.g. ":8090".
	// Empty disables it.
	HealthPort  string
	Development bool
}

// NewConverterFactory builds per-request converters against the shared
// provider registry and DAO.
func NewConverterFactory(providersCfg *appconfig.ProvidersConfig, dao repository.TranscriptionDAO) activities.ConverterFactory {
	store := project.NewStore(config.GetTranscriptionsDir())
	return func(providerName, language string) (*converter.Converter, error) {
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
}

// Run starts a transcription worker and blocks until interrupted.
func Run(opts Options) error {
	logger := temporalcommon.MustNewLogger(opts.Development)
	defer logger.Sync()

	cfg := temporalcommon.DefaultTemporalConfig()
	workerIdentity := temporalcommon.GetEnv("WORKER_IDENTITY", fmt.Sprintf("m2t-worker-%s", hostname()))

	logger.Info("Starting transcription worker",
		zap.String("temporalHost", cfg.HostPort),
		zap.String("taskQueue", cfg.TaskQueue),
		zap.String("namespace", cfg.Namespace),
		zap.String("identity", workerIdentity))

	if ffmpeg := CheckFFmpeg(); !ffmpeg.Available {
		return fmt.Errorf("ffmpeg not found on PATH: %s", ffmpeg.Error)
	}

	temporalClient, err := temporalcommon.NewTemporalClient(cfg)
	if err != nil {
		return err
	}
	defer temporalClient.Close()

	providersCfg, err := appconfig.LoadProvidersConfigOrDefault()
	if err != nil {
		return fmt.Errorf("failed to load provider registry: %w", err)
	}

	dao := sqlite.NewSQLiteDB()
	defer dao.Close()

	transcribeActivities := activities.NewTranscribeActivities(NewConverterFactory(providersCfg, dao))

	w := worker.New(temporalClient, cfg.TaskQueue, worker.Options{
		Identity:                               workerIdentity,
		MaxConcurrentActivityExecutionSize:     10,
		MaxConcurrentWorkflowTaskExecutionSize: 10,
	})

	w.RegisterWorkflow(workflows.ChunkedTranscriptionWorkflow)
	w.RegisterWorkflow(workflows.BatchTranscriptionWorkflow)
	w.RegisterActivity(transcribeActivities.TranscribeFile)

	if opts.HealthPort != "" {
		monitor := NewHealthMonitor(workerIdentity, cfg.TaskQueue)
		monitor.SetTemporal(ConnectionStatus{Connected: true, Endpoint: cfg.HostPort})
		monitor.Start(opts.HealthPort)
		logger.Info("Health server listening", zap.String("addr", opts.HealthPort))
	}

	logger.Info("Worker ready")
	return w.Run(worker.InterruptCh())
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
