package whisper

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *openai.Client {
	cfg := openai.DefaultConfig("test-api-key")
	cfg.BaseURL = serverURL + "/v1"
	return openai.NewClientWithConfig(cfg)
}

func writeTestWAV(t *testing.T) string {
	t.Helper()
	// Minimal RIFF/WAVE header, enough for the client to upload.
	header := []byte{
		0x52, 0x49, 0x46, 0x46, 0x24, 0x00, 0x00, 0x00,
		0x57, 0x41, 0x56, 0x45, 0x66, 0x6D, 0x74, 0x20,
		0x10, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
		0x80, 0x3E, 0x00, 0x00, 0x00, 0x7D, 0x00, 0x00,
		0x02, 0x00, 0x10, 0x00, 0x64, 0x61, 0x74, 0x61,
		0x00, 0x00, 0x00, 0x00,
	}
	path := filepath.Join(t.TempDir(), "sample.wav")
	require.NoError(t, os.WriteFile(path, header, 0o644))
	return path
}

// TestRemoteTranscriberTranscript tests request shape and response handling
// against a mocked OpenAI endpoint.
func TestRemoteTranscriberTranscript(t *testing.T) {
	tests := []struct {
		name         string
		language     string
		mockStatus   int
		mockResponse string
		expectedText string
		wantErr      bool
	}{
		{
			name:         "successful_transcription",
			mockStatus:   http.StatusOK,
			mockResponse: `{"text": "quarterly planning recap"}`,
			expectedText: "quarterly planning recap",
		},
		{
			name:         "language_forwarded",
			language:     "de",
			mockStatus:   http.StatusOK,
			mockResponse: `{"text": "wochenbericht"}`,
			expectedText: "wochenbericht",
		},
		{
			name:         "unicode_text",
			mockStatus:   http.StatusOK,
			mockResponse: `{"text": "会议纪要 with émojis 🎵"}`,
			expectedText: "会议纪要 with émojis 🎵",
		},
		{
			name:         "unauthorized",
			mockStatus:   http.StatusUnauthorized,
			mockResponse: `{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`,
			wantErr:      true,
		},
		{
			name:         "rate_limited",
			mockStatus:   http.StatusTooManyRequests,
			mockResponse: `{"error": {"message": "Rate limit exceeded", "type": "rate_limit_error"}}`,
			wantErr:      true,
		},
		{
			name:         "empty_transcription_is_not_an_error",
			mockStatus:   http.StatusOK,
			mockResponse: `{"text": ""}`,
			expectedText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotModel, gotLanguage string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseMultipartForm(32<<20))
				gotModel = r.FormValue("model")
				gotLanguage = r.FormValue("language")

				_, _, err := r.FormFile("file")
				require.NoError(t, err)

				w.WriteHeader(tt.mockStatus)
				w.Write([]byte(tt.mockResponse))
			}))
			defer server.Close()

			rt := NewRemoteTranscriber(newTestClient(server.URL))
			text, err := rt.Transcript(writeTestWAV(t), tt.language)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedText, text)
			assert.Equal(t, "whisper-1", gotModel)
			assert.Equal(t, tt.language, gotLanguage)
		})
	}
}

// TestRemoteTranscriberFileNotFound tests the missing input path.
func TestRemoteTranscriberFileNotFound(t *testing.T) {
	rt := NewRemoteTranscriber(newTestClient("http://localhost:1"))

	_, err := rt.Transcript(filepath.Join(t.TempDir(), "missing.mp3"), "")
	assert.Error(t, err)
}

// TestRemoteTranscriberTimeout tests that a stalled server surfaces as a
// client-side error instead of hanging.
func TestRemoteTranscriberTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.Write([]byte(`{"text": "too late"}`))
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("test-api-key")
	cfg.BaseURL = server.URL + "/v1"
	cfg.HTTPClient = &http.Client{Timeout: 100 * time.Millisecond}
	rt := NewRemoteTranscriber(openai.NewClientWithConfig(cfg))

	_, err := rt.Transcript(writeTestWAV(t), "")
	require.Error(t, err)
}
