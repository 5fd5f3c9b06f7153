package repository

import (
	"memo-whisper/internal/app/model"
)

// TranscriptionDAO persists finished conversions and answers the queries the
// CLI and the HTTP API need. Implementations exist for SQLite and PostgreSQL.
type TranscriptionDAO interface {
	// Close releases the underlying database handle.
	Close() error

	// CheckIfFileProcessed returns the id of the newest successful record for
	// fileName. When no such record exists the error is sql.ErrNoRows.
	CheckIfFileProcessed(fileName string) (int, error)

	// RecordToDB stores one finished conversion, successful or not.
	RecordToDB(t model.Transcription) error

	// GetAllByProject returns every successful transcription of a project,
	// newest first.
	GetAllByProject(project string) ([]model.Transcription, error)

	// GetRecent returns the newest records across all projects, including
	// failed ones. A non-positive limit falls back to a small default.
	GetRecent(limit int) ([]model.Transcription, error)

	// ListProjects returns the distinct project names, alphabetically.
	ListProjects() ([]string, error)

	// GetStatistics aggregates counts and total audio duration over all rows.
	GetStatistics() (*Statistics, error)
}

// Statistics is the aggregate view served by the stats endpoint.
type Statistics struct {
	TotalCount      int
	SuccessCount    int
	FailedCount     int
	PartialCount    int
	ProjectCount    int
	TotalDurationMs int64
}
