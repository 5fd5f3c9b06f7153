package chunk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChunkDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp(t.TempDir(), chunkDirPattern+"*")
	require.NoError(t, err)
	return dir
}

func writeArtifact(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))
	return path
}

// TestCleanup tests that artifacts and the emptied job directory are
// removed.
func TestCleanup(t *testing.T) {
	dir := newChunkDir(t)
	chunks := []Materialized{
		{Path: writeArtifact(t, dir, "chunk_00000000_00605000.wav")},
		{Path: writeArtifact(t, dir, "chunk_00595000_01200000.wav")},
	}

	Cleanup(chunks, dir)

	for _, c := range chunks {
		assert.NoFileExists(t, c.Path)
	}
	assert.NoDirExists(t, dir)
}

// TestCleanupSkipsErrorLeaves tests that leaves without an artifact are
// skipped without disturbing the rest.
func TestCleanupSkipsErrorLeaves(t *testing.T) {
	dir := newChunkDir(t)
	chunks := []Materialized{
		{Path: writeArtifact(t, dir, "chunk_00000000_00605000.wav")},
		{Path: "", Err: ErrChunkOversize},
	}

	Cleanup(chunks, dir)

	assert.NoFileExists(t, chunks[0].Path)
	assert.NoDirExists(t, dir)
}

// TestCleanupKeepsNonEmptyDir tests that the job directory survives when it
// still holds files the pipeline does not know about.
func TestCleanupKeepsNonEmptyDir(t *testing.T) {
	dir := newChunkDir(t)
	chunks := []Materialized{
		{Path: writeArtifact(t, dir, "chunk_00000000_00605000.wav")},
	}
	foreign := writeArtifact(t, dir, "unrelated.txt")

	Cleanup(chunks, dir)

	assert.NoFileExists(t, chunks[0].Path)
	assert.DirExists(t, dir)
	assert.FileExists(t, foreign)
}

// TestCleanupToleratesMissingArtifacts tests that already-deleted artifacts
// do not prevent directory removal.
func TestCleanupToleratesMissingArtifacts(t *testing.T) {
	dir := newChunkDir(t)
	chunks := []Materialized{
		{Path: filepath.Join(dir, "chunk_00000000_00605000.wav")},
		{Path: filepath.Join(dir, "chunk_00595000_01200000.wav")},
	}

	Cleanup(chunks, dir)

	assert.NoDirExists(t, dir)
}

// TestCleanupRefusesForeignDir tests the guard against removing a directory
// that is not a chunk workspace.
func TestCleanupRefusesForeignDir(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "precious.txt")

	Cleanup(nil, dir)

	assert.DirExists(t, dir)
}

// TestDiscardJobDir tests force removal of a partially materialized job
// directory and the same foreign-directory guard.
func TestDiscardJobDir(t *testing.T) {
	dir := newChunkDir(t)
	writeArtifact(t, dir, "chunk_00000000_00605000.wav")

	discardJobDir(dir)
	assert.NoDirExists(t, dir)

	foreign := t.TempDir()
	writeArtifact(t, foreign, "precious.txt")
	discardJobDir(foreign)
	assert.DirExists(t, foreign)
}
