//go:build integration
// +build integration

package integration

import (
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-whisper/internal/app/api/whisper_server"
	"memo-whisper/internal/app/chunk"
	"memo-whisper/internal/app/converter"
	"memo-whisper/internal/app/project"
	"memo-whisper/internal/app/repository/sqlite"
)

// These tests run the real pipeline end to end: ffprobe and ffmpeg from
// PATH, a real SQLite database and a whisper server stubbed with httptest.
//
// Run with: go test -tags integration ./internal/app/integration/...

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not found in PATH, skipping", name)
	}
}

// writeSilenceWAV writes a 16kHz mono 16-bit PCM file of the given duration.
func writeSilenceWAV(t *testing.T, path string, duration time.Duration) {
	t.Helper()

	const sampleRate = 16000
	samples := int(duration.Milliseconds()) * sampleRate / 1000
	dataSize := uint32(samples * 2)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	write := func(v interface{}) {
		require.NoError(t, binary.Write(f, binary.LittleEndian, v))
	}
	write([]byte("RIFF"))
	write(uint32(36 + dataSize))
	write([]byte("WAVE"))
	write([]byte("fmt "))
	write(uint32(16))
	write(uint16(1)) // PCM
	write(uint16(1))
	write(uint32(sampleRate))
	write(uint32(sampleRate * 2))
	write(uint16(2))
	write(uint16(16))
	write([]byte("data"))
	write(dataSize)
	write(make([]byte, dataSize))
}

// whisperStub serves the OpenAI-compatible transcription endpoint, answering
// every upload with the given text.
func whisperStub(t *testing.T, text string, requests *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file.Close()
		assert.NotEmpty(t, header.Filename)
		assert.NotEmpty(t, r.FormValue("model"))

		if requests != nil {
			requests.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": text})
	}))
}

func newStubTranscriber(srv *httptest.Server) *whisper_server.HTTPProvider {
	return whisper_server.NewHTTPProvider(whisper_server.Config{
		BaseURL: srv.URL + "/v1",
		APIKey:  "test-key",
		Timeout: 10 * time.Second,
	})
}

func TestConvertFileSingleChunk(t *testing.T) {
	requireTool(t, "ffprobe")

	dataDir := t.TempDir()
	wav := filepath.Join(dataDir, "standup.wav")
	writeSilenceWAV(t, wav, 2*time.Second)

	srv := whisperStub(t, "weekly sync covered hiring and the roadmap", nil)
	defer srv.Close()

	dao, err := sqlite.NewSQLiteDBAt(filepath.Join(dataDir, "transcriptions.db"))
	require.NoError(t, err)
	store := project.NewStore(filepath.Join(dataDir, "transcriptions"))

	conv := converter.NewConverter(newStubTranscriber(srv), dao,
		converter.WithProviderName("whisper_server"),
		converter.WithLanguage("en"),
		converter.WithProjectStore(store),
	)
	defer conv.Close()

	rec, err := conv.ConvertFile("weekly", wav)
	require.NoError(t, err)

	assert.Equal(t, 1, rec.ChunkCount)
	assert.Equal(t, 1, rec.SuccessCount)
	assert.Equal(t, "weekly sync covered hiring and the roadmap", rec.Transcript)
	assert.InDelta(t, 2000, rec.AudioDurationMs, 100)
	assert.Empty(t, rec.ErrorMessage)

	id, err := dao.CheckIfFileProcessed("standup.wav")
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	rows, err := dao.GetAllByProject("weekly")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "whisper_server", rows[0].Provider)
	assert.Equal(t, "en", rows[0].Language)

	proj, err := store.Latest()
	require.NoError(t, err)
	saved, err := proj.ReadTranscript()
	require.NoError(t, err)
	assert.Equal(t, rec.Transcript, saved)
	assert.FileExists(t, proj.InfoPath())
}

func TestConvertFileChunked(t *testing.T) {
	requireTool(t, "ffprobe")
	requireTool(t, "ffmpeg")

	dataDir := t.TempDir()
	wav := filepath.Join(dataDir, "allhands.wav")
	writeSilenceWAV(t, wav, 6*time.Second)

	var requests atomic.Int64
	srv := whisperStub(t, "hello from the all hands", &requests)
	defer srv.Close()

	dao, err := sqlite.NewSQLiteDBAt(filepath.Join(dataDir, "transcriptions.db"))
	require.NoError(t, err)

	settings := chunk.DefaultSettings()
	settings.MaxSingleDurationMs = 2 * 1000
	settings.TargetChunkDurationMs = 2 * 1000
	settings.MinChunkDurationMs = 1 * 1000
	settings.OverlapMs = 500
	settings.MaterializeWorkers = 2

	conv := converter.NewConverter(newStubTranscriber(srv), dao,
		converter.WithProviderName("whisper_server"),
		converter.WithSettings(settings),
	)
	defer conv.Close()

	rec, err := conv.ConvertFile("allhands", wav)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, rec.ChunkCount, 2)
	assert.Equal(t, rec.ChunkCount, rec.SuccessCount)
	assert.EqualValues(t, rec.ChunkCount, requests.Load())
	assert.Contains(t, rec.Transcript, "hello")
	assert.Empty(t, rec.ErrorMessage)
}

func TestConvertDirectorySkipsProcessed(t *testing.T) {
	requireTool(t, "ffprobe")

	dataDir := t.TempDir()
	inputDir := filepath.Join(dataDir, "recordings")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	writeSilenceWAV(t, filepath.Join(inputDir, "monday.wav"), time.Second)
	writeSilenceWAV(t, filepath.Join(inputDir, "tuesday.wav"), time.Second)

	srv := whisperStub(t, "short memo", nil)
	defer srv.Close()

	dao, err := sqlite.NewSQLiteDBAt(filepath.Join(dataDir, "transcriptions.db"))
	require.NoError(t, err)

	conv := converter.NewConverter(newStubTranscriber(srv), dao,
		converter.WithProviderName("whisper_server"),
	)
	defer conv.Close()

	result, err := conv.ConvertDirectory("memos", inputDir, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 0, result.Skipped)

	again, err := conv.ConvertDirectory("memos", inputDir, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Total)
	assert.Equal(t, 0, again.Succeeded)
	assert.Equal(t, 2, again.Skipped)
}
