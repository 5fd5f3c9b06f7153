package app

import (
	"memo-whisper/internal/app/api"
	appconfig "memo-whisper/internal/app/config"
	"memo-whisper/internal/app/converter"
	"memo-whisper/internal/app/project"
	"memo-whisper/internal/app/repository"
	"memo-whisper/internal/app/repository/sqlite"
	"memo-whisper/internal/config"
)

// ProviderName selects a transcription backend from providers.yaml. Empty
// selects the configured default.
type ProviderName string

// Language is the language hint passed to the backend, empty for auto-detect.
type Language string

func provideProvidersConfig() (*appconfig.ProvidersConfig, error) {
	return appconfig.LoadProvidersConfigOrDefault()
}

func provideTranscriber(cfg *appconfig.ProvidersConfig, name ProviderName) (api.Transcriber, error) {
	return appconfig.NewTranscriber(cfg, string(name))
}

func provideTranscriptionDAO() repository.TranscriptionDAO {
	return sqlite.NewSQLiteDB()
}

func provideProjectStore() *project.Store {
	return project.NewStore(config.GetTranscriptionsDir())
}

func provideConverter(
	transcriber api.Transcriber,
	dao repository.TranscriptionDAO,
	store *project.Store,
	cfg *appconfig.ProvidersConfig,
	name ProviderName,
	language Language,
) *converter.Converter {
	resolved := string(name)
	if resolved == "" {
		resolved = cfg.DefaultProvider
	}
	return converter.NewConverter(transcriber, dao,
		converter.WithProviderName(resolved),
		converter.WithLanguage(string(language)),
		converter.WithProjectStore(store),
	)
}
