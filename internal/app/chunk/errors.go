package chunk

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult marks a chunk whose backend call succeeded but returned
	// no usable text.
	ErrEmptyResult = errors.New("transcription returned empty text")

	// ErrChunkOversize marks a chunk that still exceeded the size limit after
	// the re-split depth guard was exhausted.
	ErrChunkOversize = errors.New("chunk still oversized after re-splitting")

	// ErrAllChunksFailed is returned when not a single chunk produced text.
	ErrAllChunksFailed = errors.New("all chunks failed to transcribe")
)

// BackendError wraps a transcription backend failure for one chunk.
type BackendError struct {
	Index int
	Err   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("chunk %d: transcription backend failed: %v", e.Index, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
