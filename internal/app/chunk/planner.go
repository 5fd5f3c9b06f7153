package chunk

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

const (
	// resplitThreshold rejects a materialized chunk at 90% of the hard limit
	// rather than the limit itself, so borderline chunks never reach the
	// backend.
	resplitThreshold = 0.9

	// resplitDurationMs is the fixed conservative duration used when a chunk
	// has to be re-split after encoding.
	resplitDurationMs = 5 * 60 * 1000
)

// Spec is a planned time range of the source audio, before materialization.
type Spec struct {
	Index   int
	StartMs int
	EndMs   int
}

// Materialized is a chunk encoded to a WAV artifact. When Err is set the
// subtree for this range could not be brought under the size limit and Path
// is empty; such leaves become failed outcomes instead of backend calls.
type Materialized struct {
	Spec       Spec
	Path       string
	SizeBytes  int64
	DurationMs int
	Err        error
}

// Extractor encodes a time range of the source into a standalone audio file.
type Extractor interface {
	ExtractWAV(inputPath string, startMs, endMs int, outputPath string) error
}

// PlanSpecs partitions [0, totalDurationMs] into chunk ranges. Every chunk
// after the first starts overlapMs before its nominal boundary so boundary
// words appear in two adjacent chunks.
func PlanSpecs(totalDurationMs, chunkDurationMs, overlapMs int) []Spec {
	if totalDurationMs <= 0 || chunkDurationMs <= 0 {
		return nil
	}

	numChunks := (totalDurationMs + chunkDurationMs - 1) / chunkDurationMs
	specs := make([]Spec, 0, numChunks)
	for i := 0; i < numChunks; i++ {
		start := i * chunkDurationMs
		if i > 0 {
			start -= overlapMs
			if start < 0 {
				start = 0
			}
		}
		end := start + chunkDurationMs + overlapMs
		if end > totalDurationMs {
			end = totalDurationMs
		}
		if start >= end {
			continue
		}
		specs = append(specs, Spec{Index: i, StartMs: start, EndMs: end})
	}

	return specs
}

// Planner materializes planned specs and re-splits any chunk whose encoded
// size still violates the limit.
type Planner struct {
	extractor Extractor
	settings  Settings
}

func NewPlanner(extractor Extractor, settings Settings) *Planner {
	return &Planner{extractor: extractor, settings: settings}
}

// PlanAndMaterialize plans chunks over [0, totalDurationMs] of sourcePath,
// encodes each to a WAV file in destDir, and returns the in-order leaf
// sequence with final indices 0..n-1. Extraction failures are unrecoverable
// and abort the plan; oversize ranges that survive the depth guard are
// returned as error leaves.
func (p *Planner) PlanAndMaterialize(sourcePath string, totalDurationMs, chunkDurationMs int, destDir string) ([]Materialized, error) {
	specs := PlanSpecs(totalDurationMs, chunkDurationMs, p.settings.OverlapMs)
	if len(specs) == 0 {
		return nil, fmt.Errorf("no chunks planned for duration %dms", totalDurationMs)
	}

	leaves, err := p.materialize(sourcePath, specs, destDir, 0)
	if err != nil {
		return nil, err
	}

	// Leaf order is source order; recursion replaced parents in place.
	for i := range leaves {
		leaves[i].Spec.Index = i
	}

	return leaves, nil
}

func (p *Planner) materialize(sourcePath string, specs []Spec, destDir string, depth int) ([]Materialized, error) {
	encoded := make([]Materialized, len(specs))

	if p.settings.MaterializeWorkers > 1 {
		var g errgroup.Group
		g.SetLimit(p.settings.MaterializeWorkers)
		for i, spec := range specs {
			g.Go(func() error {
				m, err := p.encodeSpec(sourcePath, spec, destDir)
				if err != nil {
					return err
				}
				encoded[i] = m
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, spec := range specs {
			m, err := p.encodeSpec(sourcePath, spec, destDir)
			if err != nil {
				return nil, err
			}
			encoded[i] = m
		}
	}

	sizeLimit := int64(float64(p.settings.MaxFileSizeBytes) * resplitThreshold)

	var leaves []Materialized
	for _, m := range encoded {
		if m.SizeBytes <= sizeLimit {
			leaves = append(leaves, m)
			continue
		}

		// Oversized after real encoding: discard the artifact and re-split
		// this chunk's own range with a fixed conservative duration.
		log.Printf("chunk [%d-%dms] encoded to %dB, over the %dB budget, re-splitting",
			m.Spec.StartMs, m.Spec.EndMs, m.SizeBytes, sizeLimit)
		if err := os.Remove(m.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove oversized chunk %s: %v", m.Path, err)
		}

		if depth >= p.settings.MaxSplitDepth {
			leaves = append(leaves, Materialized{
				Spec:       m.Spec,
				DurationMs: m.DurationMs,
				Err: fmt.Errorf("range [%d-%dms] is %dB at depth %d: %w",
					m.Spec.StartMs, m.Spec.EndMs, m.SizeBytes, depth, ErrChunkOversize),
			})
			continue
		}

		spanMs := m.Spec.EndMs - m.Spec.StartMs
		subSpecs := PlanSpecs(spanMs, resplitDurationMs, p.settings.OverlapMs)
		for i := range subSpecs {
			subSpecs[i].StartMs += m.Spec.StartMs
			subSpecs[i].EndMs += m.Spec.StartMs
		}

		subLeaves, err := p.materialize(sourcePath, subSpecs, destDir, depth+1)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, subLeaves...)
	}

	return leaves, nil
}

func (p *Planner) encodeSpec(sourcePath string, spec Spec, destDir string) (Materialized, error) {
	outputPath := filepath.Join(destDir, fmt.Sprintf("chunk_%08d_%08d.wav", spec.StartMs, spec.EndMs))

	if err := p.extractor.ExtractWAV(sourcePath, spec.StartMs, spec.EndMs, outputPath); err != nil {
		return Materialized{}, fmt.Errorf("failed to materialize chunk [%d-%dms]: %w", spec.StartMs, spec.EndMs, err)
	}

	stat, err := os.Stat(outputPath)
	if err != nil {
		return Materialized{}, fmt.Errorf("failed to stat chunk artifact %s: %w", outputPath, err)
	}

	return Materialized{
		Spec:       spec,
		Path:       outputPath,
		SizeBytes:  stat.Size(),
		DurationMs: spec.EndMs - spec.StartMs,
	}, nil
}
