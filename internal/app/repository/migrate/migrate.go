package migrate

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"memo-whisper/internal/app/repository/pg"
	"memo-whisper/internal/app/repository/sqlite"
	"memo-whisper/internal/config"
)

const batchSize = 1000

// checkpointFileName remembers the last migrated row id under the data
// directory, so an interrupted migration resumes where it stopped.
const checkpointFileName = "migrate_last_id.txt"

// MigrateToPostgres copies all transcriptions from the local SQLite database
// into PostgreSQL, in id order, batch by batch.
func MigrateToPostgres() error {
	sqliteDB := sqlite.GetConnection()
	defer sqliteDB.Close()

	postgresDB, err := pg.GetConnection()
	if err != nil {
		return err
	}
	defer postgresDB.Close()

	if err := pg.InitSchema(postgresDB); err != nil {
		return err
	}

	checkpoint := filepath.Join(config.GetDataDir(), checkpointFileName)
	lastID := readLastID(checkpoint)

	total := 0
	for {
		maxID, scanned, inserted, err := migrateBatch(sqliteDB, postgresDB, lastID)
		if err != nil {
			return err
		}
		if scanned == 0 {
			break
		}
		lastID = maxID
		total += inserted
		if err := saveLastID(checkpoint, lastID); err != nil {
			return fmt.Errorf("failed to save checkpoint: %w", err)
		}
		log.Printf("migrated batch of %d rows, last id %d", inserted, lastID)
	}

	fmt.Printf("Data migration completed, %d rows copied.\n", total)
	return nil
}

// migrateBatch copies up to batchSize rows with id > lastID inside one
// transaction. Rows that fail validation or insertion are logged and skipped.
func migrateBatch(sqliteDB, postgresDB *sql.DB, lastID int) (maxID, scanned, inserted int, err error) {
	rows, err := sqliteDB.Query(`SELECT id, project, file_name, audio_duration_ms, chunk_count, success_count, transcript, provider, language, last_conversion_time, has_error, error_message FROM transcriptions WHERE id > ? ORDER BY id LIMIT ?`, lastID, batchSize)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("sqlite query failed: %w", err)
	}
	defer rows.Close()

	tx, err := postgresDB.Begin()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO transcriptions (id, project, file_name, audio_duration_ms, chunk_count, success_count, transcript, provider, language, last_conversion_time, has_error, error_message) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	maxID = lastID
	for rows.Next() {
		var id, audioDurationMs, chunkCount, successCount, hasError int
		var project, fileName, transcript, provider, language, errorMessage string
		var lastConversionTime time.Time

		err = rows.Scan(&id, &project, &fileName, &audioDurationMs, &chunkCount, &successCount,
			&transcript, &provider, &language, &lastConversionTime, &hasError, &errorMessage)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("sqlite scan failed: %w", err)
		}
		scanned++
		maxID = id

		if strings.TrimSpace(project) == "" || strings.TrimSpace(fileName) == "" {
			log.Printf("skipping row %d: project or file_name is empty", id)
			continue
		}

		_, err = stmt.Exec(id, project, fileName, audioDurationMs, chunkCount, successCount,
			transcript, provider, language, lastConversionTime, hasError, errorMessage)
		if err != nil {
			log.Printf("failed to insert row %d: %v", id, err)
			continue
		}
		inserted++
	}
	if err = rows.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("sqlite rows iteration failed: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to commit batch: %w", err)
	}
	return maxID, scanned, inserted, nil
}

func readLastID(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	lastID, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return lastID
}

func saveLastID(path string, lastID int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(lastID)), 0644)
}
