package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"memo-whisper/internal/app/model"
	"memo-whisper/internal/app/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestJob(id string, createdAt time.Time) *model.TranscriptionJob {
	return &model.TranscriptionJob{
		ID:        id,
		Project:   "weekly",
		Status:    "pending",
		FileName:  id + ".m4a",
		FilePath:  "/audio/" + id + ".m4a",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "standup.m4a")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))
	return path
}

type fakeConverter struct {
	convertFunc func(project, filePath string) (*model.Transcription, error)
}

func (f *fakeConverter) ConvertFile(project, filePath string) (*model.Transcription, error) {
	return f.convertFunc(project, filePath)
}

type fakeArchive struct {
	mu   sync.Mutex
	keys []string
	url  string
	err  error
}

func (f *fakeArchive) Store(ctx context.Context, key, transcript string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func (f *fakeArchive) storedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keys...)
}

type fakeDAO struct {
	recent      []model.Transcription
	byProject   map[string][]model.Transcription
	stats       *repository.Statistics
	err         error
	recentLimit int
}

func (d *fakeDAO) Close() error { return nil }

func (d *fakeDAO) CheckIfFileProcessed(fileName string) (int, error) {
	return 0, sql.ErrNoRows
}

func (d *fakeDAO) RecordToDB(t model.Transcription) error { return d.err }

func (d *fakeDAO) GetAllByProject(project string) ([]model.Transcription, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.byProject[project], nil
}

func (d *fakeDAO) GetRecent(limit int) ([]model.Transcription, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.recentLimit = limit
	if limit > 0 && len(d.recent) > limit {
		return d.recent[:limit], nil
	}
	return d.recent, nil
}

func (d *fakeDAO) ListProjects() ([]string, error) {
	if d.err != nil {
		return nil, d.err
	}
	seen := make(map[string]bool)
	var projects []string
	for _, rec := range d.recent {
		if !seen[rec.Project] {
			seen[rec.Project] = true
			projects = append(projects, rec.Project)
		}
	}
	return projects, nil
}

func (d *fakeDAO) GetStatistics() (*repository.Statistics, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.stats, nil
}
