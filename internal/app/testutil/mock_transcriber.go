package testutil

import (
	"path/filepath"
	"sync"
	"time"

	"memo-whisper/internal/app/api"
)

// TranscriptCall records a single backend invocation for later inspection.
type TranscriptCall struct {
	InputFilePath string
	Language      string
	Timestamp     time.Time
	Response      string
	Err           error
}

// MockTranscriber is a configurable implementation of api.Transcriber for
// tests. Responses and errors can be bound to a file name, to a call index,
// or set as defaults; every call is recorded in order.
type MockTranscriber struct {
	mu sync.Mutex

	defaultResponse string
	defaultErr      error
	latency         time.Duration

	responseByFile map[string]string
	errByFile      map[string]error
	responseByCall map[int]string
	errByCall      map[int]error

	calls []TranscriptCall
}

// NewMockTranscriber creates a MockTranscriber that returns a fixed default
// response for every file.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		defaultResponse: "this is a mock transcription result",
		responseByFile:  make(map[string]string),
		errByFile:       make(map[string]error),
		responseByCall:  make(map[int]string),
		errByCall:       make(map[int]error),
	}
}

// Transcript implements api.Transcriber. Resolution order: per-file error,
// per-call error, default error, then per-call response, per-file response,
// default response.
func (m *MockTranscriber) Transcript(inputFilePath string, language string) (string, error) {
	m.mu.Lock()
	index := len(m.calls)
	latency := m.latency

	var err error
	if e, ok := m.errByFile[filepath.Base(inputFilePath)]; ok {
		err = e
	} else if e, ok := m.errByCall[index]; ok {
		err = e
	} else {
		err = m.defaultErr
	}

	response := ""
	if err == nil {
		if r, ok := m.responseByCall[index]; ok {
			response = r
		} else if r, ok := m.responseByFile[filepath.Base(inputFilePath)]; ok {
			response = r
		} else {
			response = m.defaultResponse
		}
	}

	m.calls = append(m.calls, TranscriptCall{
		InputFilePath: inputFilePath,
		Language:      language,
		Timestamp:     time.Now(),
		Response:      response,
		Err:           err,
	})
	m.mu.Unlock()

	if latency > 0 {
		time.Sleep(latency)
	}

	return response, err
}

// WithDefaultResponse sets the text returned when no override matches.
func (m *MockTranscriber) WithDefaultResponse(response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultResponse = response
	return m
}

// WithDefaultError makes every unmatched call fail with err.
func (m *MockTranscriber) WithDefaultError(err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultErr = err
	return m
}

// WithLatency makes every call sleep for d before returning.
func (m *MockTranscriber) WithLatency(d time.Duration) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency = d
	return m
}

// WithResponseForFile binds a response to a file name (base name, not path).
func (m *MockTranscriber) WithResponseForFile(fileName, response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responseByFile[fileName] = response
	return m
}

// WithErrorForFile binds an error to a file name (base name, not path).
func (m *MockTranscriber) WithErrorForFile(fileName string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errByFile[fileName] = err
	return m
}

// WithResponseAt binds a response to the i-th call (0-based), regardless of
// file. Useful when input paths are generated at runtime.
func (m *MockTranscriber) WithResponseAt(i int, response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responseByCall[i] = response
	return m
}

// WithErrorAt binds an error to the i-th call (0-based).
func (m *MockTranscriber) WithErrorAt(i int, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errByCall[i] = err
	return m
}

// WithResponses binds responses to calls 0..len-1 in order.
func (m *MockTranscriber) WithResponses(responses ...string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range responses {
		m.responseByCall[i] = r
	}
	return m
}

// GetCallCount returns the number of Transcript calls made so far.
func (m *MockTranscriber) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// GetCalls returns a copy of the recorded calls in invocation order.
func (m *MockTranscriber) GetCalls() []TranscriptCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]TranscriptCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// WasCalledWith reports whether any call used the given file name.
func (m *MockTranscriber) WasCalledWith(fileName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if filepath.Base(c.InputFilePath) == fileName {
			return true
		}
	}
	return false
}

// Reset clears all recorded calls and overrides.
func (m *MockTranscriber) Reset() *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.defaultErr = nil
	m.latency = 0
	m.defaultResponse = "this is a mock transcription result"
	m.responseByFile = make(map[string]string)
	m.errByFile = make(map[string]error)
	m.responseByCall = make(map[int]string)
	m.errByCall = make(map[int]error)
	return m
}

var _ api.Transcriber = (*MockTranscriber)(nil)
