package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"memo-whisper/internal/app/util/files"
	"memo-whisper/internal/config"
)

// DBFileName is the SQLite file kept under the data directory.
const DBFileName = "transcription.db"

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions
(
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    project              TEXT      NOT NULL,
    file_name            TEXT      NOT NULL,
    audio_duration_ms    INTEGER   NOT NULL DEFAULT 0,
    chunk_count          INTEGER   NOT NULL DEFAULT 0,
    success_count        INTEGER   NOT NULL DEFAULT 0,
    transcript           TEXT      NOT NULL DEFAULT '',
    provider             TEXT      NOT NULL DEFAULT '',
    language             TEXT      NOT NULL DEFAULT '',
    last_conversion_time TIMESTAMP NOT NULL,
    has_error            INTEGER   NOT NULL DEFAULT 0,
    error_message        TEXT      NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transcriptions_project ON transcriptions (project);
CREATE INDEX IF NOT EXISTS idx_transcriptions_file_name ON transcriptions (file_name);
`

var (
	connection *sql.DB
	once       sync.Once
)

// GetConnection returns the shared handle to the database file under the data
// directory, creating the file and the schema on first use.
func GetConnection() *sql.DB {
	once.Do(func() {
		dataDir := config.GetDataDir()
		files.CheckAndCreateDirectory(dataDir)

		conn, err := Open(filepath.Join(dataDir, DBFileName))
		if err != nil {
			log.Fatalf("Failed to open database: %v\n", err)
		}
		connection = conn
	})
	return connection
}

// Open opens the database file at dbPath, creating it and the transcriptions
// schema when missing.
func Open(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	if _, err := conn.Exec(createTableSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return conn, nil
}
