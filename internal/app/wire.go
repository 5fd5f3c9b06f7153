//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"memo-whisper/internal/app/converter"
	"memo-whisper/internal/app/project"
	"memo-whisper/internal/app/repository"
)

// InitializeConverter assembles the conversion pipeline for one
// provider/language selection.
func InitializeConverter(name ProviderName, language Language) (*converter.Converter, error) {
	wire.Build(
		provideProvidersConfig,
		provideTranscriber,
		provideTranscriptionDAO,
		provideProjectStore,
		provideConverter,
	)
	return nil, nil
}

// InitializeTranscriptionDAO opens the shared transcription database.
func InitializeTranscriptionDAO() repository.TranscriptionDAO {
	wire.Build(provideTranscriptionDAO)
	return nil
}

// InitializeProjectStore returns the store over the transcriptions directory.
func InitializeProjectStore() *project.Store {
	wire.Build(provideProjectStore)
	return nil
}
