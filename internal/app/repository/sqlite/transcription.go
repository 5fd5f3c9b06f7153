package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"memo-whisper/internal/app/model"
	"memo-whisper/internal/app/repository"
)

const defaultRecentLimit = 50

// selectColumns is the column list every row query shares, in scan order.
const selectColumns = `id, project, file_name, audio_duration_ms, chunk_count, success_count, transcript, provider, language, last_conversion_time, error_message`

type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB wraps the shared connection under the data directory.
func NewSQLiteDB() *SQLiteDB {
	return &SQLiteDB{db: GetConnection()}
}

// NewSQLiteDBAt opens a database at an explicit path, for tools and tests.
func NewSQLiteDBAt(dbPath string) (*SQLiteDB, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &SQLiteDB{db: db}, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) CheckIfFileProcessed(fileName string) (int, error) {
	query := `SELECT id FROM transcriptions WHERE file_name = ? AND has_error = 0 ORDER BY id DESC LIMIT 1`
	var id int
	err := sdb.db.QueryRow(query, fileName).Scan(&id)
	return id, err
}

func (sdb *SQLiteDB) RecordToDB(t model.Transcription) error {
	hasError := 0
	if t.SuccessCount == 0 {
		hasError = 1
	}
	if t.LastConversionTime.IsZero() {
		t.LastConversionTime = time.Now()
	}

	insertSQL := `INSERT INTO transcriptions (project, file_name, audio_duration_ms, chunk_count, success_count, transcript, provider, language, last_conversion_time, has_error, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := sdb.db.Exec(insertSQL, t.Project, t.FileName, t.AudioDurationMs, t.ChunkCount, t.SuccessCount,
		t.Transcript, t.Provider, t.Language, t.LastConversionTime, hasError, t.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to insert transcription: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) GetAllByProject(project string) ([]model.Transcription, error) {
	query := fmt.Sprintf(`SELECT %s FROM transcriptions WHERE has_error = 0 AND project = ? ORDER BY last_conversion_time DESC, id DESC`, selectColumns)
	rows, err := sdb.db.Query(query, project)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return scanTranscriptions(rows)
}

func (sdb *SQLiteDB) GetRecent(limit int) ([]model.Transcription, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	query := fmt.Sprintf(`SELECT %s FROM transcriptions ORDER BY last_conversion_time DESC, id DESC LIMIT ?`, selectColumns)
	rows, err := sdb.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return scanTranscriptions(rows)
}

func (sdb *SQLiteDB) ListProjects() ([]string, error) {
	rows, err := sdb.db.Query(`SELECT DISTINCT project FROM transcriptions ORDER BY project`)
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

func (sdb *SQLiteDB) GetStatistics() (*repository.Statistics, error) {
	query := `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN has_error = 0 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN has_error = 1 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN success_count > 0 AND success_count < chunk_count THEN 1 ELSE 0 END), 0),
		COUNT(DISTINCT project),
		COALESCE(SUM(audio_duration_ms), 0)
		FROM transcriptions`

	var stats repository.Statistics
	err := sdb.db.QueryRow(query).Scan(&stats.TotalCount, &stats.SuccessCount, &stats.FailedCount,
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
