package testutil

import (
	"database/sql"
	"sort"
	"sync"
	"time"

	"memo-whisper/internal/app/model"
	"memo-whisper/internal/app/repository"
)

// MockTranscriptionDAO is an in-memory TranscriptionDAO for tests. Behavior is
// configured through the With* builders; state is inspected through the
// accessor methods.
type MockTranscriptionDAO struct {
	mu           sync.RWMutex
	records      []model.Transcription
	nextID       int
	methodErrors map[string]error
	closeCalled  bool
}

// NewMockTranscriptionDAO creates an empty mock DAO.
func NewMockTranscriptionDAO() *MockTranscriptionDAO {
	return &MockTranscriptionDAO{
		nextID:       1,
		methodErrors: make(map[string]error),
	}
}

// WithError makes the named method ("RecordToDB", "GetAllByProject", ...)
// return err.
func (m *MockTranscriptionDAO) WithError(method string, err error) *MockTranscriptionDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methodErrors[method] = err
	return m
}

// WithProcessedFile seeds one successful record for fileName, so
// CheckIfFileProcessed reports it as done.
func (m *MockTranscriptionDAO) WithProcessedFile(project, fileName string) *MockTranscriptionDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, model.Transcription{
		ID:                 m.nextID,
		Project:            project,
		FileName:           fileName,
		ChunkCount:         1,
		SuccessCount:       1,
		Transcript:         "seeded transcript",
		LastConversionTime: time.Now(),
	})
	m.nextID++
	return m
}

// WithRecords seeds arbitrary records, assigning ids in order.
func (m *MockTranscriptionDAO) WithRecords(records ...model.Transcription) *MockTranscriptionDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range records {
		rec.ID = m.nextID
		m.nextID++
		m.records = append(m.records, rec)
	}
	return m
}

func (m *MockTranscriptionDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalled = true
	return m.methodErrors["Close"]
}

func (m *MockTranscriptionDAO) CheckIfFileProcessed(fileName string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.methodErrors["CheckIfFileProcessed"]; err != nil {
		return 0, err
	}
	for i := len(m.records) - 1; i >= 0; i-- {
		rec := m.records[i]
		if rec.FileName == fileName && rec.SuccessCount > 0 {
			return rec.ID, nil
		}
	}
	return 0, sql.ErrNoRows
}

func (m *MockTranscriptionDAO) RecordToDB(t model.Transcription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.methodErrors["RecordToDB"]; err != nil {
		return err
	}
	t.ID = m.nextID
	m.nextID++
	if t.LastConversionTime.IsZero() {
		t.LastConversionTime = time.Now()
	}
	m.records = append(m.records, t)
	return nil
}

func (m *MockTranscriptionDAO) GetAllByProject(project string) ([]model.Transcription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.methodErrors["GetAllByProject"]; err != nil {
		return nil, err
	}
	var result []model.Transcription
	for _, rec := range m.records {
		if rec.Project == project && rec.SuccessCount > 0 {
			result = append(result, rec)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (m *MockTranscriptionDAO) GetRecent(limit int) ([]model.Transcription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.methodErrors["GetRecent"]; err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	result := make([]model.Transcription, len(m.records))
	copy(result, m.records)
	sortNewestFirst(result)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockTranscriptionDAO) ListProjects() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.methodErrors["ListProjects"]; err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var projects []string
	for _, rec := range m.records {
		if !seen[rec.Project] {
			seen[rec.Project] = true
			projects = append(projects, rec.Project)
		}
	}
	sort.Strings(projects)
	return projects, nil
}

func (m *MockTranscriptionDAO) GetStatistics() (*repository.Statistics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.methodErrors["GetStatistics"]; err != nil {
		return nil, err
	}
	stats := &repository.Statistics{}
	projects := make(map[string]bool)
	for _, rec := range m.records {
		stats.TotalCount++
		if rec.SuccessCount > 0 {
			stats.SuccessCount++
		} else {
			stats.FailedCount++
		}
		if rec.Partial() {
			stats.PartialCount++
		}
		stats.TotalDurationMs += int64(rec.AudioDurationMs)
		projects[rec.Project] = true
	}
	stats.ProjectCount = len(projects)
	return stats, nil
}

// Records returns a copy of everything stored so far, in insertion order.
func (m *MockTranscriptionDAO) Records() []model.Transcription {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]model.Transcription, len(m.records))
	copy(result, m.records)
	return result
}

// LastRecorded returns the most recently stored record, or nil.
func (m *MockTranscriptionDAO) LastRecorded() *model.Transcription {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.records) == 0 {
		return nil
	}
	rec := m.records[len(m.records)-1]
	return &rec
}

// RecordCount returns how many records were stored.
func (m *MockTranscriptionDAO) RecordCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// WasCloseCalled reports whether Close ran.
func (m *MockTranscriptionDAO) WasCloseCalled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closeCalled
}

func sortNewestFirst(records []model.Transcription) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].LastConversionTime.Equal(records[j].LastConversionTime) {
			return records[i].ID > records[j].ID
		}
		return records[i].LastConversionTime.After(records[j].LastConversionTime)
	})
}

var _ repository.TranscriptionDAO = (*MockTranscriptionDAO)(nil)
