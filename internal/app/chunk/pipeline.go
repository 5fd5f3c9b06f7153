package chunk

import (
	"fmt"
	"log"
	"os"
	"strings"

	"memo-whisper/internal/app/api"
	"memo-whisper/internal/app/audio"
)

// Outcome is the result of transcribing one leaf chunk. Exactly one Outcome
// exists per leaf, in chunk order.
type Outcome struct {
	Index int
	Text  string
	Err   error
}

// Success reports whether this chunk produced usable text.
func (o Outcome) Success() bool {
	return o.Err == nil
}

// JobResult is the final result of one chunked transcription job. Counts are
// always explicitly initialized, including the degenerate one-chunk case.
type JobResult struct {
	Outcomes     []Outcome
	MergedText   string
	SuccessCount int
	TotalCount   int
}

// Partial reports whether some, but not all, chunks succeeded.
func (r *JobResult) Partial() bool {
	return r.SuccessCount > 0 && r.SuccessCount < r.TotalCount
}

// Pipeline runs the full chunked transcription flow: estimate a safe chunk
// duration, plan and materialize overlapping chunks, transcribe them in
// order, merge the transcripts, and clean up the artifacts.
type Pipeline struct {
	planner    *Planner
	settings   Settings
	createTemp func(dir, pattern string) (string, error)
	onChunk    func(done, total int)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTempDirCreator replaces the temp directory factory, mainly for tests.
func WithTempDirCreator(create func(dir, pattern string) (string, error)) Option {
	return func(p *Pipeline) {
		p.createTemp = create
	}
}

// WithChunkProgress registers a callback invoked after each chunk is
// transcribed, successfully or not.
func WithChunkProgress(fn func(done, total int)) Option {
	return func(p *Pipeline) {
		p.onChunk = fn
	}
}

// NewPipeline builds a pipeline around the given extractor and settings.
func NewPipeline(extractor Extractor, settings Settings, opts ...Option) *Pipeline {
	p := &Pipeline{
		planner:    NewPlanner(extractor, settings),
		settings:   settings,
		createTemp: os.MkdirTemp,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run transcribes sourcePath in overlapping chunks and returns the merged
// result. A partial result (some chunks failed) is returned without error;
// only a complete failure or unrecoverable I/O aborts the job. Chunk
// artifacts are always released before returning.
func (p *Pipeline) Run(info audio.Info, sourcePath string, backend api.Transcriber, language string) (*JobResult, error) {
	if info.DurationMs <= 0 {
		return nil, fmt.Errorf("source %s has no usable duration", sourcePath)
	}

	chunkDurationMs := EstimateChunkDuration(info.DurationMs, info.SizeBytes, p.settings)
	log.Printf("chunking %s: %dms total, %dB, chunk duration %dms, overlap %dms",
		sourcePath, info.DurationMs, info.SizeBytes, chunkDurationMs, p.settings.OverlapMs)

	dir, err := p.createTemp("", chunkDirPattern+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to create chunk directory: %w", err)
	}

	leaves, err := p.planner.PlanAndMaterialize(sourcePath, info.DurationMs, chunkDurationMs, dir)
	if err != nil {
		discardJobDir(dir)
		return nil, fmt.Errorf("chunk materialization failed: %w", err)
	}

	// Resource release is unconditional from here on.
	defer Cleanup(leaves, dir)

	outcomes := p.transcribeAll(leaves, backend, language)

	result := &JobResult{
		Outcomes:   outcomes,
		TotalCount: len(outcomes),
	}

	var texts []string
	for _, o := range outcomes {
		if o.Success() {
			result.SuccessCount++
			texts = append(texts, o.Text)
		}
	}

	if result.SuccessCount == 0 {
		return result, fmt.Errorf("%d chunks submitted: %w", result.TotalCount, ErrAllChunksFailed)
	}

	result.MergedText = MergeTranscripts(texts, p.settings.OverlapWordWindow)

	if result.Partial() {
		log.Printf("transcription partial: %d/%d chunks succeeded", result.SuccessCount, result.TotalCount)
	}

	return result, nil
}

// transcribeAll submits leaves strictly in chunk order. Per-chunk failures
// are recorded and never abort the loop.
func (p *Pipeline) transcribeAll(leaves []Materialized, backend api.Transcriber, language string) []Outcome {
	outcomes := make([]Outcome, 0, len(leaves))

	for i, leaf := range leaves {
		outcome := p.transcribeOne(leaf, backend, language)
		outcomes = append(outcomes, outcome)
		if p.onChunk != nil {
			p.onChunk(i+1, len(leaves))
		}
	}

	return outcomes
}

func (p *Pipeline) transcribeOne(leaf Materialized, backend api.Transcriber, language string) Outcome {
	index := leaf.Spec.Index

	// A leaf that never came under the size limit is a failure of its own
	// kind; there is nothing to submit.
	if leaf.Err != nil {
		log.Printf("chunk %d skipped: %v", index, leaf.Err)
		return Outcome{Index: index, Err: leaf.Err}
	}

	text, err := backend.Transcript(leaf.Path, language)
	if err != nil {
		log.Printf("chunk %d failed: %v", index, err)
		return Outcome{Index: index, Err: &BackendError{Index: index, Err: err}}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Printf("chunk %d returned empty text", index)
		return Outcome{Index: index, Err: fmt.Errorf("chunk %d: %w", index, ErrEmptyResult)}
	}

	return Outcome{Index: index, Text: text}
}

// RunChunkedTranscription is the package entry point: it wires a default
// ffmpeg-backed pipeline for the given settings and runs one job.
func RunChunkedTranscription(info audio.Info, sourcePath string, backend api.Transcriber, language string, settings Settings) (*JobResult, error) {
	extractor := audio.NewExtractor(settings.SampleRate, settings.Channels)
	return NewPipeline(extractor, settings).Run(info, sourcePath, backend, language)
}
