package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-whisper/internal/app/audio"
	"memo-whisper/internal/app/chunk"
	"memo-whisper/internal/app/project"
	"memo-whisper/internal/app/testutil"
)

// stubExtractor writes chunk files sized proportionally to their duration, so
// chunked conversions run without ffmpeg.
type stubExtractor struct {
	bytesPerMs float64
}

func (e *stubExtractor) ExtractWAV(inputPath string, startMs, endMs int, outputPath string) error {
	size := int(float64(endMs-startMs) * e.bytesPerMs)
	return os.WriteFile(outputPath, make([]byte, size), 0644)
}

func staticProbe(durationMs int, sizeBytes int64) func(string) (audio.Info, error) {
	return func(filePath string) (audio.Info, error) {
		return audio.Info{Path: filePath, DurationMs: durationMs, SizeBytes: sizeBytes}, nil
	}
}

// TestConvertFileSingleShot verifies a small recording is transcribed in one
// request and recorded with explicit 1/1 counts.
func TestConvertFileSingleShot(t *testing.T) {
	backend := testutil.NewMockTranscriber().WithDefaultResponse("quarterly planning discussion")
	dao := testutil.NewMockTranscriptionDAO()

	c := NewConverter(backend, dao,
		WithProbe(staticProbe(60000, 1000)),
		WithLanguage("en"),
		WithProviderName("whisper_server"),
	)

	rec, err := c.ConvertFile("standup", "/recordings/monday.wav")
	require.NoError(t, err)

	assert.Equal(t, "monday.wav", rec.FileName)
	assert.Equal(t, "standup", rec.Project)
	assert.Equal(t, 1, rec.ChunkCount)
	assert.Equal(t, 1, rec.SuccessCount)
	assert.Equal(t, "quarterly planning discussion", rec.Transcript)
	assert.Equal(t, 60000, rec.AudioDurationMs)
	assert.Equal(t, "whisper_server", rec.Provider)
	assert.Equal(t, "en", rec.Language)
	assert.Empty(t, rec.ErrorMessage)

	require.Equal(t, 1, dao.RecordCount())
	stored := dao.LastRecorded()
	assert.Equal(t, 1, stored.SuccessCount)

	calls := backend.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/recordings/monday.wav", calls[0].InputFilePath)
	assert.Equal(t, "en", calls[0].Language)
}

// TestConvertFileEmptyTranscript verifies a blank backend response is a
// recorded failure, not a silent success.
func TestConvertFileEmptyTranscript(t *testing.T) {
	backend := testutil.NewMockTranscriber().WithDefaultResponse("   ")
	dao := testutil.NewMockTranscriptionDAO()

	c := NewConverter(backend, dao, WithProbe(staticProbe(30000, 500)))

	rec, err := c.ConvertFile("standup", "/recordings/quiet.wav")
	assert.ErrorIs(t, err, chunk.ErrEmptyResult)

	assert.Equal(t, 1, rec.ChunkCount)
	assert.Equal(t, 0, rec.SuccessCount)
	assert.Empty(t, rec.Transcript)
	assert.Equal(t, 1, dao.RecordCount())
}

// TestConvertFileTranscriptionError verifies backend failures are recorded
// with the error message.
func TestConvertFileTranscriptionError(t *testing.T) {
	backend := testutil.NewMockTranscriber().WithDefaultError(errors.New("api down"))
	dao := testutil.NewMockTranscriptionDAO()

	c := NewConverter(backend, dao, WithProbe(staticProbe(30000, 500)))

	rec, err := c.ConvertFile("standup", "/recordings/broken.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcription failed")

	assert.Equal(t, 1, rec.ChunkCount)
	assert.Equal(t, 0, rec.SuccessCount)
	assert.Contains(t, dao.LastRecorded().ErrorMessage, "api down")
}

// TestConvertFileProbeFailure verifies an unreadable source never reaches the
// backend but is still recorded.
func TestConvertFileProbeFailure(t *testing.T) {
	backend := testutil.NewMockTranscriber()
	dao := testutil.NewMockTranscriptionDAO()

	c := NewConverter(backend, dao, WithProbe(func(string) (audio.Info, error) {
		return audio.Info{}, errors.New("no such file")
	}))

	rec, err := c.ConvertFile("standup", "/recordings/missing.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to probe audio")

	assert.Equal(t, 0, rec.ChunkCount)
	assert.Equal(t, 0, rec.SuccessCount)
	assert.Equal(t, 0, backend.GetCallCount())
	assert.Equal(t, 1, dao.RecordCount())
}

// TestConvertFileChunked verifies a long recording goes through the chunk
// pipeline and the merged transcript is recorded with full counts.
func TestConvertFileChunked(t *testing.T) {
	backend := testutil.NewMockTranscriber().
		WithResponses("alpha one", "beta two", "gamma three")
	dao := testutil.NewMockTranscriptionDAO()

	// 21 minutes exceeds the 20 minute single-shot limit.
	c := NewConverter(backend, dao,
		WithProbe(staticProbe(1260000, 4_000_000)),
		WithExtractor(&stubExtractor{bytesPerMs: 1.0}),
	)

	rec, err := c.ConvertFile("all-hands", "/recordings/long.wav")
	require.NoError(t, err)

	assert.Equal(t, 3, rec.ChunkCount)
	assert.Equal(t, 3, rec.SuccessCount)
	assert.Equal(t, "alpha one beta two gamma three", rec.Transcript)
	assert.False(t, rec.Partial())
	assert.Empty(t, rec.ErrorMessage)
	assert.Equal(t, 3, backend.GetCallCount())
}

// TestConvertFileChunkedPartial verifies one failed chunk still yields a
// merged transcript, with the gap noted in the error message.
func TestConvertFileChunkedPartial(t *testing.T) {
	backend := testutil.NewMockTranscriber().
		WithResponses("alpha one", "ignored", "gamma three").
		WithErrorAt(1, errors.New("rate limited"))
	dao := testutil.NewMockTranscriptionDAO()

	c := NewConverter(backend, dao,
		WithProbe(staticProbe(1260000, 4_000_000)),
		WithExtractor(&stubExtractor{bytesPerMs: 1.0}),
	)

	rec, err := c.ConvertFile("all-hands", "/recordings/flaky.wav")
	require.NoError(t, err)

	assert.Equal(t, 3, rec.ChunkCount)
	assert.Equal(t, 2, rec.SuccessCount)
	assert.True(t, rec.Partial())
	assert.Equal(t, "alpha one gamma three", rec.Transcript)
	assert.Contains(t, rec.ErrorMessage, "chunk 1")
	assert.Contains(t, rec.ErrorMessage, "rate limited")
}

// TestConvertFileChunkedAllFailed verifies total chunk failure surfaces as an
// error with zero successes recorded.
func TestConvertFileChunkedAllFailed(t *testing.T) {
	backend := testutil.NewMockTranscriber().WithDefaultError(errors.New("api down"))
	dao := testutil.NewMockTranscriptionDAO()

	c := NewConverter(backend, dao,
		WithProbe(staticProbe(1260000, 4_000_000)),
		WithExtractor(&stubExtractor{bytesPerMs: 1.0}),
	)

	rec, err := c.ConvertFile("all-hands", "/recordings/doomed.wav")
	assert.ErrorIs(t, err, chunk.ErrAllChunksFailed)

	assert.Equal(t, 3, rec.ChunkCount)
	assert.Equal(t, 0, rec.SuccessCount)
	assert.Equal(t, 1, dao.RecordCount())
}

// TestConvertFileRecordFailure verifies a database error is reported even for
// a successful transcription.
func TestConvertFileRecordFailure(t *testing.T) {
	backend := testutil.NewMockTranscriber()
	dao := testutil.NewMockTranscriptionDAO().WithError("RecordToDB", errors.New("disk full"))

	c := NewConverter(backend, dao, WithProbe(staticProbe(30000, 500)))

	_, err := c.ConvertFile("standup", "/recordings/monday.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record outcome")
}

// TestConvertFileWritesProjectStore verifies the transcript lands in a dated
// project directory when a store is configured.
func TestConvertFileWritesProjectStore(t *testing.T) {
	backend := testutil.NewMockTranscriber().WithDefaultResponse("team retro notes")
	dao := testutil.NewMockTranscriptionDAO()
	store := project.NewStore(t.TempDir())

	c := NewConverter(backend, dao,
		WithProbe(staticProbe(60000, 1000)),
		WithProviderName("whisper_server"),
		WithProjectStore(store),
	)

	_, err := c.ConvertFile("retro", "/recordings/retro.wav")
	require.NoError(t, err)

	projects, err := store.List()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "retro", projects[0].Name)

	transcript, err := projects[0].ReadTranscript()
	require.NoError(t, err)
	assert.Equal(t, "team retro notes", transcript)

	info, err := os.ReadFile(projects[0].InfoPath())
	require.NoError(t, err)
	assert.Contains(t, string(info), "Source File: retro.wav")
	assert.Contains(t, string(info), "Provider: whisper_server")
}

// TestConvertFileFailureSkipsProjectStore verifies failed conversions leave
// no project directory behind.
func TestConvertFileFailureSkipsProjectStore(t *testing.T) {
	backend := testutil.NewMockTranscriber().WithDefaultError(errors.New("api down"))
	dao := testutil.NewMockTranscriptionDAO()
	store := project.NewStore(t.TempDir())

	c := NewConverter(backend, dao,
		WithProbe(staticProbe(30000, 500)),
		WithProjectStore(store),
	)

	_, err := c.ConvertFile("retro", "/recordings/retro.wav")
	require.Error(t, err)

	projects, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func writeBatchDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0644))
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}
	return dir
}

// TestConvertDirectory verifies already-processed files are skipped and the
// remainder is converted oldest first.
func TestConvertDirectory(t *testing.T) {
	backend := testutil.NewMockTranscriber().WithDefaultResponse("notes")
	dao := testutil.NewMockTranscriptionDAO().WithProcessedFile("standup", "old.wav")

	dir := writeBatchDir(t, "old.wav", "mid.wav", "new.wav")

	c := NewConverter(backend, dao, WithProbe(staticProbe(30000, 500)))

	result, err := c.ConvertDirectory("standup", dir, 0, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	assert.True(t, backend.WasCalledWith("mid.wav"))
	assert.True(t, backend.WasCalledWith("new.wav"))
	assert.False(t, backend.WasCalledWith("old.wav"))
	assert.Equal(t, 3, dao.RecordCount())
}

// TestConvertDirectoryContinuesOnFailure verifies one bad file does not stop
// the batch.
func TestConvertDirectoryContinuesOnFailure(t *testing.T) {
	backend := testutil.NewMockTranscriber().
		WithDefaultResponse("notes").
		WithErrorForFile("bad.wav", errors.New("corrupt header"))
	dao := testutil.NewMockTranscriptionDAO()

	dir := writeBatchDir(t, "bad.wav", "good.wav")

	c := NewConverter(backend, dao, WithProbe(staticProbe(30000, 500)))

	result, err := c.ConvertDirectory("standup", dir, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, dao.RecordCount())
}

// TestConvertDirectoryCountLimit verifies convertCount bounds the batch.
func TestConvertDirectoryCountLimit(t *testing.T) {
	backend := testutil.NewMockTranscriber().WithDefaultResponse("notes")
	dao := testutil.NewMockTranscriptionDAO()

	dir := writeBatchDir(t, "a.wav", "b.wav", "c.wav")

	c := NewConverter(backend, dao, WithProbe(staticProbe(30000, 500)))

	result, err := c.ConvertDirectory("standup", dir, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	// Oldest two files are taken first.
	assert.True(t, backend.WasCalledWith("a.wav"))
	assert.True(t, backend.WasCalledWith("b.wav"))
	assert.False(t, backend.WasCalledWith("c.wav"))
}

// TestConvertDirectoryEmpty verifies an empty directory is a no-op.
func TestConvertDirectoryEmpty(t *testing.T) {
	c := NewConverter(testutil.NewMockTranscriber(), testutil.NewMockTranscriptionDAO(),
		WithProbe(staticProbe(30000, 500)))

	result, err := c.ConvertDirectory("standup", t.TempDir(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Skipped)
}

// TestSummarizeFailures covers the error message cap.
func TestSummarizeFailures(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []chunk.Outcome
		want     string
	}{
		{
			name:     "no_failures",
			outcomes: []chunk.Outcome{{Index: 0, Text: "ok"}},
			want:     "",
		},
		{
			name: "two_failures",
			outcomes: []chunk.Outcome{
				{Index: 0, Text: "ok"},
				{Index: 1, Err: &chunk.BackendError{Index: 1, Err: errors.New("timeout")}},
				{Index: 3, Err: &chunk.BackendError{Index: 3, Err: errors.New("rate limited")}},
			},
			want: "chunk 1: transcription backend failed: timeout; chunk 3: transcription backend failed: rate limited",
		},
		{
			name: "capped_at_three",
			outcomes: []chunk.Outcome{
				{Index: 0, Err: errors.New("e0")},
				{Index: 1, Err: errors.New("e1")},
				{Index: 2, Err: errors.New("e2")},
				{Index: 3, Err: errors.New("e3")},
				{Index: 4, Err: errors.New("e4")},
			},
			want: "e0; e1; e2; and 2 more",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarizeFailures(tt.outcomes))
		})
	}
}

// TestCloseForwardsToDAO verifies Close releases the database.
func TestCloseForwardsToDAO(t *testing.T) {
	dao := testutil.NewMockTranscriptionDAO()
	c := NewConverter(testutil.NewMockTranscriber(), dao)

	require.NoError(t, c.Close())
	assert.True(t, dao.WasCloseCalled())

	failing := testutil.NewMockTranscriptionDAO().WithError("Close", fmt.Errorf("already closed"))
	c2 := NewConverter(testutil.NewMockTranscriber(), failing)
	assert.Error(t, c2.Close())
}
