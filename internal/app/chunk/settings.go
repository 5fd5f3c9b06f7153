package chunk

// Settings configures the chunked transcription pipeline.
type Settings struct {
	// MaxFileSizeBytes is the backend's hard per-request file size limit.
	MaxFileSizeBytes int64

	// MaxSingleDurationMs is the longest recording submitted as a single
	// request; anything longer (or larger than MaxFileSizeBytes) is chunked.
	MaxSingleDurationMs int

	// TargetChunkDurationMs is the nominal chunk length the planner prefers
	// when the bitrate estimate allows it.
	TargetChunkDurationMs int

	// MinChunkDurationMs bounds the estimator from below so dense audio does
	// not get split into an excessive number of tiny chunks.
	MinChunkDurationMs int

	// OverlapMs is the window shared between adjacent chunks so words at a
	// cut boundary appear in both transcripts.
	OverlapMs int

	// OverlapWordWindow is the number of words the merger scans when removing
	// duplicated boundary text.
	OverlapWordWindow int

	// SampleRate and Channels define the materialized chunk format.
	SampleRate int
	Channels   int

	// MaxSplitDepth caps recursive re-splitting of chunks that remain
	// oversized after encoding.
	MaxSplitDepth int

	// MaterializeWorkers > 1 extracts chunks concurrently. Transcription
	// order is unaffected.
	MaterializeWorkers int
}

// DefaultSettings returns the pipeline defaults, sized for hosted whisper
// APIs with a 20MB request limit.
func DefaultSettings() Settings {
	return Settings{
		MaxFileSizeBytes:      20 * 1024 * 1024,
		MaxSingleDurationMs:   20 * 60 * 1000,
		TargetChunkDurationMs: 10 * 60 * 1000,
		MinChunkDurationMs:    3 * 60 * 1000,
		OverlapMs:             5 * 1000,
		OverlapWordWindow:     10,
		SampleRate:            16000,
		Channels:              1,
		MaxSplitDepth:         5,
		MaterializeWorkers:    1,
	}
}

// NeedsChunking reports whether a source with the given size and duration
// exceeds the single-request limits.
func (s Settings) NeedsChunking(sizeBytes int64, durationMs int) bool {
	return sizeBytes > s.MaxFileSizeBytes || durationMs > s.MaxSingleDurationMs
}
