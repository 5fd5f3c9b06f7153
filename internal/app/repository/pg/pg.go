package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"memo-whisper/internal/config"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions
(
    id                   SERIAL PRIMARY KEY,
    project              TEXT        NOT NULL,
    file_name            TEXT        NOT NULL,
    audio_duration_ms    BIGINT      NOT NULL DEFAULT 0,
    chunk_count          INTEGER     NOT NULL DEFAULT 0,
    success_count        INTEGER     NOT NULL DEFAULT 0,
    transcript           TEXT        NOT NULL DEFAULT '',
    provider             TEXT        NOT NULL DEFAULT '',
    language             TEXT        NOT NULL DEFAULT '',
    last_conversion_time TIMESTAMPTZ NOT NULL,
    has_error            INTEGER     NOT NULL DEFAULT 0,
    error_message        TEXT        NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transcriptions_project ON transcriptions (project);
CREATE INDEX IF NOT EXISTS idx_transcriptions_file_name ON transcriptions (file_name);
`

// GetConnection opens a PostgreSQL connection using the environment-derived
// connection string. See config.NetworkConfig for the DB_* variables.
func GetConnection() (*sql.DB, error) {
	connStr := config.GetNetworkConfig().GetPostgresConnectionString()
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	return db, nil
}

// InitSchema creates the transcriptions table and its indexes when missing.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
