package converter

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"memo-whisper/internal/app/api"
	"memo-whisper/internal/app/audio"
	"memo-whisper/internal/app/chunk"
	"memo-whisper/internal/app/model"
	"memo-whisper/internal/app/project"
	"memo-whisper/internal/app/repository"
	"memo-whisper/internal/app/util/files"
)

// Converter drives whole conversions: probe the source, transcribe it in a
// single request or through the chunk pipeline, and record every outcome.
type Converter struct {
	transcriber api.Transcriber
	db          repository.TranscriptionDAO
	settings    chunk.Settings
	pipeline    *chunk.Pipeline
	probe       func(filePath string) (audio.Info, error)
	extractor   chunk.Extractor
	store       *project.Store
	language    string
	provider    string
	progress    ProgressConfig
}

type Option func(*Converter)

// WithSettings overrides the chunking defaults.
func WithSettings(settings chunk.Settings) Option {
	return func(c *Converter) { c.settings = settings }
}

// WithLanguage sets the transcription language hint. Empty means auto-detect.
func WithLanguage(language string) Option {
	return func(c *Converter) { c.language = language }
}

// WithProviderName records which backend produced each transcription.
func WithProviderName(name string) Option {
	return func(c *Converter) { c.provider = name }
}

// WithProgress controls the terminal progress bars during batch conversion.
func WithProgress(cfg ProgressConfig) Option {
	return func(c *Converter) { c.progress = cfg }
}

// WithProbe replaces the ffprobe-backed source inspection.
func WithProbe(probe func(filePath string) (audio.Info, error)) Option {
	return func(c *Converter) { c.probe = probe }
}

// WithExtractor replaces the ffmpeg-backed chunk extractor.
func WithExtractor(extractor chunk.Extractor) Option {
	return func(c *Converter) { c.extractor = extractor }
}

// WithProjectStore mirrors every usable transcript into a dated project
// directory alongside the database record.
func WithProjectStore(store *project.Store) Option {
	return func(c *Converter) { c.store = store }
}

func NewConverter(transcriber api.Transcriber, transcriptionDAO repository.TranscriptionDAO, opts ...Option) *Converter {
	c := &Converter{
		transcriber: transcriber,
		db:          transcriptionDAO,
		settings:    chunk.DefaultSettings(),
		probe:       audio.GetAudioInfo,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.extractor == nil {
		c.extractor = audio.NewExtractor(c.settings.SampleRate, c.settings.Channels)
	}
	c.pipeline = chunk.NewPipeline(c.extractor, c.settings, chunk.WithChunkProgress(func(done, total int) {
		log.Printf("transcribed chunk %d/%d", done, total)
	}))
	return c
}

func (c *Converter) Close() error {
	return c.db.Close()
}

// ConvertFile transcribes one recording and records the outcome, successful
// or not. The returned record always carries explicit chunk counts; the error
// is non-nil only when nothing usable was transcribed.
func (c *Converter) ConvertFile(project string, filePath string) (*model.Transcription, error) {
	rec := model.Transcription{
		Project:            project,
		FileName:           filepath.Base(filePath),
		Provider:           c.provider,
		Language:           c.language,
		LastConversionTime: time.Now(),
	}

	info, err := c.probe(filePath)
	if err != nil {
		rec.ErrorMessage = fmt.Sprintf("failed to probe audio: %v", err)
		return c.record(rec, fmt.Errorf("failed to probe audio: %w", err))
	}
	rec.AudioDurationMs = info.DurationMs

	if c.settings.NeedsChunking(info.SizeBytes, info.DurationMs) {
		return c.convertChunked(rec, info, filePath)
	}
	return c.convertSingle(rec, filePath)
}

func (c *Converter) convertSingle(rec model.Transcription, filePath string) (*model.Transcription, error) {
	rec.ChunkCount = 1

	text, err := c.transcriber.Transcript(filePath, c.language)
	if err != nil {
		rec.ErrorMessage = fmt.Sprintf("transcription failed: %v", err)
		return c.record(rec, fmt.Errorf("transcription failed: %w", err))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		rec.ErrorMessage = chunk.ErrEmptyResult.Error()
		return c.record(rec, chunk.ErrEmptyResult)
	}

	rec.SuccessCount = 1
	rec.Transcript = text
	return c.record(rec, nil)
}

func (c *Converter) convertChunked(rec model.Transcription, info audio.Info, filePath string) (*model.Transcription, error) {
	result, err := c.pipeline.Run(info, filePath, c.transcriber, c.language)
	if result == nil {
		rec.ErrorMessage = fmt.Sprintf("chunk pipeline failed: %v", err)
		return c.record(rec, fmt.Errorf("chunk pipeline failed: %w", err))
	}

	rec.ChunkCount = result.TotalCount
	rec.SuccessCount = result.SuccessCount
	rec.Transcript = result.MergedText
	rec.ErrorMessage = summarizeFailures(result.Outcomes)

	if result.SuccessCount == 0 {
		return c.record(rec, err)
	}
	return c.record(rec, nil)
}

// record persists the outcome. A database failure is reported even when the
// conversion itself succeeded, since the transcript would otherwise be lost.
func (c *Converter) record(rec model.Transcription, convErr error) (*model.Transcription, error) {
	c.saveToProject(rec)
	if err := c.db.RecordToDB(rec); err != nil {
		if convErr != nil {
			return &rec, fmt.Errorf("failed to record outcome: %v (conversion error: %w)", err, convErr)
		}
		return &rec, fmt.Errorf("failed to record outcome: %w", err)
	}
	return &rec, convErr
}

// saveToProject writes the transcript and metadata into a fresh project
// directory. The database stays the source of truth, so failures here only
// log.
func (c *Converter) saveToProject(rec model.Transcription) {
	if c.store == nil || rec.SuccessCount == 0 {
		return
	}

	proj, err := c.store.Create(rec.Project)
	if err != nil {
		log.Printf("failed to create project directory for %s: %v", rec.FileName, err)
		return
	}
	if err := proj.SaveTranscript(rec.Transcript); err != nil {
		log.Printf("failed to save transcript for %s: %v", rec.FileName, err)
		return
	}
	err = proj.WriteInfo(project.Info{
		Name:         proj.Name,
		SourceFile:   rec.FileName,
		DurationMs:   rec.AudioDurationMs,
		ChunkCount:   rec.ChunkCount,
		SuccessCount: rec.SuccessCount,
		Provider:     rec.Provider,
		Language:     rec.Language,
		CreatedAt:    rec.LastConversionTime,
	})
	if err != nil {
		log.Printf("failed to write project info for %s: %v", rec.FileName, err)
	}
}

const maxSummarizedFailures = 3

// summarizeFailures joins the failed outcome errors, capped so a job with
// many broken chunks does not flood the error_message column. Outcome errors
// already name their chunk.
func summarizeFailures(outcomes []chunk.Outcome) string {
	failed := lo.Filter(outcomes, func(o chunk.Outcome, _ int) bool { return !o.Success() })
	if len(failed) == 0 {
		return ""
	}
	parts := lo.Map(failed, func(o chunk.Outcome, _ int) string { return o.Err.Error() })
	if len(parts) > maxSummarizedFailures {
		rest := len(parts) - maxSummarizedFailures
		parts = append(parts[:maxSummarizedFailures], fmt.Sprintf("and %d more", rest))
	}
	return strings.Join(parts, "; ")
}

// BatchResult summarizes one directory conversion run.
type BatchResult struct {
	Total     int
	Succeeded int
	Partial   int
	Failed    int
	Skipped   int
}

// ConvertDirectory transcribes up to convertCount unprocessed audio files
// from inputDir, oldest first. Individual failures are recorded and counted
// but never abort the batch.
func (c *Converter) ConvertDirectory(project, inputDir string, convertCount, parallel int) (*BatchResult, error) {
	fileInfos, err := files.GetAudioFiles(inputDir)
	if err != nil {
		return nil, err
	}
	if parallel < 1 {
		parallel = 1
	}

	filesToProcess, skipped := c.filterUnprocessedFiles(fileInfos, convertCount)
	result := &BatchResult{Total: len(filesToProcess), Skipped: skipped}
	if len(filesToProcess) == 0 {
		return result, nil
	}

	manager := NewProgressManager(c.progress)
	defer manager.Wait()
	bar := manager.CreateBar(len(filesToProcess), FormatProgressDescription("Converting", project))

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan bool, parallel)

	for _, file := range filesToProcess {
		wg.Add(1)
		go func(file model.FileInfo) {
			defer wg.Done()
			defer bar.Increment()

			sem <- true
			rec, err := c.ConvertFile(project, file.FullPath)
			<-sem

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failed++
				log.Printf("failed to convert %s: %v", file.Name, err)
			case rec.Partial():
				result.Partial++
				log.Printf("converted %s with %d/%d chunks", file.Name, rec.SuccessCount, rec.ChunkCount)
			default:
				result.Succeeded++
				log.Printf("converted %s", file.Name)
			}
		}(file)
	}
	wg.Wait()
	bar.Complete()

	return result, nil
}

func (c *Converter) filterUnprocessedFiles(fileInfos []model.FileInfo, convertCount int) ([]model.FileInfo, int) {
	if convertCount <= 0 {
		convertCount = len(fileInfos)
	}

	filesToProcess := make([]model.FileInfo, 0, convertCount)
	skipped := 0
	for _, fileInfo := range fileInfos {
		if len(filesToProcess) >= convertCount {
			break
		}
		id, err := c.db.CheckIfFileProcessed(fileInfo.Name)
		if err == nil {
			fmt.Printf("File '%s' (id %d) has already been processed, skipping...\n", fileInfo.Name, id)
			skipped++
			continue
		}
		filesToProcess = append(filesToProcess, fileInfo)
	}
	return filesToProcess, skipped
}
