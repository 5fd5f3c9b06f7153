package pg

import (
	"database/sql"
	"fmt"
	"time"

	"memo-whisper/internal/app/model"
	"memo-whisper/internal/app/repository"
)

const defaultRecentLimit = 50

const selectColumns = `id, project, file_name, audio_duration_ms, chunk_count, success_count, transcript, provider, language, last_conversion_time, error_message`

type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB connects to PostgreSQL and ensures the schema exists.
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}
	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresDB{db: db}, nil
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}

func (pdb *PostgresDB) CheckIfFileProcessed(fileName string) (int, error) {
	query := `SELECT id FROM transcriptions WHERE file_name = $1 AND has_error = 0 ORDER BY id DESC LIMIT 1`
	var id int
	err := pdb.db.QueryRow(query, fileName).Scan(&id)
	return id, err
}

func (pdb *PostgresDB) RecordToDB(t model.Transcription) error {
	hasError := 0
	if t.SuccessCount == 0 {
		hasError = 1
	}
	if t.LastConversionTime.IsZero() {
		t.LastConversionTime = time.Now()
	}

	insertSQL := `INSERT INTO transcriptions (project, file_name, audio_duration_ms, chunk_count, success_count, transcript, provider, language, last_conversion_time, has_error, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := pdb.db.Exec(insertSQL, t.Project, t.FileName, t.AudioDurationMs, t.ChunkCount, t.SuccessCount,
		t.Transcript, t.Provider, t.Language, t.LastConversionTime, hasError, t.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to insert transcription: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) GetAllByProject(project string) ([]model.Transcription, error) {
	query := fmt.Sprintf(`SELECT %s FROM transcriptions WHERE has_error = 0 AND project = $1 ORDER BY last_conversion_time DESC, id DESC`, selectColumns)
	rows, err := pdb.db.Query(query, project)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return scanTranscriptions(rows)
}

func (pdb *PostgresDB) GetRecent(limit int) ([]model.Transcription, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	query := fmt.Sprintf(`SELECT %s FROM transcriptions ORDER BY last_conversion_time DESC, id DESC LIMIT $1`, selectColumns)
	rows, err := pdb.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return scanTranscriptions(rows)
}

func (pdb *PostgresDB) ListProjects() ([]string, error) {
	rows, err := pdb.db.Query(`SELECT DISTINCT project FROM transcriptions ORDER BY project`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var projects []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return projects, nil
}

func (pdb *PostgresDB) GetStatistics() (*repository.Statistics, error) {
	query := `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN has_error = 0 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN has_error = 1 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN success_count > 0 AND success_count < chunk_count THEN 1 ELSE 0 END), 0),
		COUNT(DISTINCT project),
		COALESCE(SUM(audio_duration_ms), 0)
		FROM transcriptions`

	var stats repository.Statistics
	err := pdb.db.QueryRow(query).Scan(&stats.TotalCount, &stats.SuccessCount, &stats.FailedCount,
		&stats.PartialCount, &stats.ProjectCount, &stats.TotalDurationMs)
	if err != nil {
		return nil, fmt.Errorf("statistics query failed: %w", err)
	}
	return &stats, nil
}

func scanTranscriptions(rows *sql.Rows) ([]model.Transcription, error) {
	defer rows.Close()

	var transcriptions []model.Transcription
	for rows.Next() {
		var t model.Transcription
		err := rows.Scan(&t.ID, &t.Project, &t.FileName, &t.AudioDurationMs, &t.ChunkCount, &t.SuccessCount,
			&t.Transcript, &t.Provider, &t.Language, &t.LastConversionTime, &t.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		transcriptions = append(transcriptions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return transcriptions, nil
}
