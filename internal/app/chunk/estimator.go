package chunk

import "log"

// safeBudgetRatio leaves a 20% margin under the backend's size limit because
// encoded chunk size does not scale exactly linearly with duration.
const safeBudgetRatio = 0.8

// EstimateChunkDuration computes a chunk duration whose encoded size should
// stay under the backend limit, based on the source's observed bytes-per-ms.
// The result is clamped to [MinChunkDurationMs, TargetChunkDurationMs]. When
// the source metadata is degenerate (zero duration or size) the estimate
// falls back to the target duration; real encoded size is re-checked after
// materialization either way.
func EstimateChunkDuration(totalDurationMs int, sourceSizeBytes int64, s Settings) int {
	if totalDurationMs <= 0 || sourceSizeBytes <= 0 {
		log.Printf("chunk estimator: missing source metrics (duration=%dms size=%dB), falling back to target duration %dms",
			totalDurationMs, sourceSizeBytes, s.TargetChunkDurationMs)
		return s.TargetChunkDurationMs
	}

	bytesPerMs := float64(sourceSizeBytes) / float64(totalDurationMs)
	safeBudgetBytes := float64(s.MaxFileSizeBytes) * safeBudgetRatio

	candidateMs := int(safeBudgetBytes / bytesPerMs)
	if candidateMs > s.TargetChunkDurationMs {
		candidateMs = s.TargetChunkDurationMs
	}
	if candidateMs < s.MinChunkDurationMs {
		candidateMs = s.MinChunkDurationMs
	}

	return candidateMs
}
