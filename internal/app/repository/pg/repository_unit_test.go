package pg

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-whisper/internal/app/model"
	"memo-whisper/internal/app/repository"
)

// TestPostgresDAOInterface verifies PostgresDB implements TranscriptionDAO.
func TestPostgresDAOInterface(t *testing.T) {
	var _ repository.TranscriptionDAO = (*PostgresDB)(nil)
}

func newMockDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresDB{db: db}, mock
}

var rowColumns = []string{"id", "project", "file_name", "audio_duration_ms", "chunk_count", "success_count",
	"transcript", "provider", "language", "last_conversion_time", "error_message"}

// TestCheckIfFileProcessed covers found, not found and database error paths.
func TestCheckIfFileProcessed(t *testing.T) {
	querySQL := regexp.QuoteMeta(`SELECT id FROM transcriptions WHERE file_name = $1 AND has_error = 0 ORDER BY id DESC LIMIT 1`)

	tests := []struct {
		name        string
		fileName    string
		mockSetup   func(mock sqlmock.Sqlmock)
		expectedID  int
		expectedErr error
	}{
		{
			name:     "existing_processed_file",
			fileName: "standup.m4a",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id"}).AddRow(123)
				mock.ExpectQuery(querySQL).WithArgs("standup.m4a").WillReturnRows(rows)
			},
			expectedID: 123,
		},
		{
			name:     "unknown_file",
			fileName: "missing.m4a",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(querySQL).WithArgs("missing.m4a").WillReturnError(sql.ErrNoRows)
			},
			expectedErr: sql.ErrNoRows,
		},
		{
			name:     "database_error",
			fileName: "any.m4a",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(querySQL).WithArgs("any.m4a").WillReturnError(errors.New("connection refused"))
			},
			expectedErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdb, mock := newMockDB(t)
			tt.mockSetup(mock)

			id, err := pdb.CheckIfFileProcessed(tt.fileName)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestRecordToDB verifies the insert arguments, including the derived
// has_error flag.
func TestRecordToDB(t *testing.T) {
	insertSQL := regexp.QuoteMeta(`INSERT INTO transcriptions`)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("successful_record", func(t *testing.T) {
		pdb, mock := newMockDB(t)
		mock.ExpectExec(insertSQL).
			WithArgs("standup", "monday.m4a", 90000, 2, 2, "full transcript", "openai", "en", now, 0, "").
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := pdb.RecordToDB(model.Transcription{
			Project:            "standup",
			FileName:           "monday.m4a",
			AudioDurationMs:    90000,
			ChunkCount:         2,
			SuccessCount:       2,
			Transcript:         "full transcript",
			Provider:           "openai",
			Language:           "en",
			LastConversionTime: now,
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed_record_sets_has_error", func(t *testing.T) {
		pdb, mock := newMockDB(t)
		mock.ExpectExec(insertSQL).
			WithArgs("standup", "bad.m4a", 0, 1, 0, "", "openai", "en", now, 1, "backend unreachable").
			WillReturnResult(sqlmock.NewResult(2, 1))

		err := pdb.RecordToDB(model.Transcription{
			Project:            "standup",
			FileName:           "bad.m4a",
			ChunkCount:         1,
			Provider:           "openai",
			Language:           "en",
			LastConversionTime: now,
			ErrorMessage:       "backend unreachable",
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert_failure_returns_error", func(t *testing.T) {
		pdb, mock := newMockDB(t)
		mock.ExpectExec(insertSQL).
			WillReturnError(errors.New("deadlock detected"))

		err := pdb.RecordToDB(model.Transcription{
			Project:            "standup",
			FileName:           "x.m4a",
			SuccessCount:       1,
			LastConversionTime: now,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert transcription")
	})
}

// TestGetAllByProjectQuery verifies filtering, scan order and error handling.
func TestGetAllByProjectQuery(t *testing.T) {
	querySQL := regexp.QuoteMeta(`FROM transcriptions WHERE has_error = 0 AND project = $1`)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("rows_returned", func(t *testing.T) {
		pdb, mock := newMockDB(t)
		rows := sqlmock.NewRows(rowColumns).
			AddRow(2, "standup", "newer.m4a", 120000, 2, 2, "second", "openai", "en", now, "").
			AddRow(1, "standup", "older.m4a", 90000, 1, 1, "first", "openai", "en", now.Add(-time.Hour), "")
		mock.ExpectQuery(querySQL).WithArgs("standup").WillReturnRows(rows)

		got, err := pdb.GetAllByProject("standup")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "newer.m4a", got[0].FileName)
		assert.Equal(t, 2, got[0].ChunkCount)
		assert.Equal(t, 2, got[0].SuccessCount)
		assert.Equal(t, "first", got[1].Transcript)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query_error", func(t *testing.T) {
		pdb, mock := newMockDB(t)
		mock.ExpectQuery(querySQL).WithArgs("standup").WillReturnError(errors.New("relation does not exist"))

		_, err := pdb.GetAllByProject("standup")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query failed")
	})
}

// TestGetRecentDefaultLimit verifies the fallback limit is applied.
func TestGetRecentDefaultLimit(t *testing.T) {
	pdb, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows(rowColumns).
		AddRow(1, "retro", "a.m4a", 1000, 1, 1, "t", "openai", "en", now, "")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM transcriptions ORDER BY last_conversion_time DESC, id DESC LIMIT $1`)).
		WithArgs(defaultRecentLimit).
		WillReturnRows(rows)

	got, err := pdb.GetRecent(0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestListProjectsQuery verifies distinct projects are collected in order.
func TestListProjectsQuery(t *testing.T) {
	pdb, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"project"}).AddRow("all-hands").AddRow("standup")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT project FROM transcriptions ORDER BY project`)).
		WillReturnRows(rows)

	projects, err := pdb.ListProjects()
	require.NoError(t, err)
	assert.Equal(t, []string{"all-hands", "standup"}, projects)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestGetStatisticsQuery verifies all six aggregates are scanned.
func TestGetStatisticsQuery(t *testing.T) {
	pdb, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"total", "success", "failed", "partial", "projects", "duration"}).
		AddRow(10, 8, 2, 1, 3, int64(7200000))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*)`)).WillReturnRows(rows)

	stats, err := pdb.GetStatistics()
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalCount)
	assert.Equal(t, 8, stats.SuccessCount)
	assert.Equal(t, 2, stats.FailedCount)
	assert.Equal(t, 1, stats.PartialCount)
	assert.Equal(t, 3, stats.ProjectCount)
	assert.Equal(t, int64(7200000), stats.TotalDurationMs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCloseReleasesHandle verifies Close is forwarded to the database.
func TestCloseReleasesHandle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	pdb := &PostgresDB{db: db}
	mock.ExpectClose()

	assert.NoError(t, pdb.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
