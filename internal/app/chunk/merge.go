package chunk

import "strings"

// MergeTranscripts joins per-chunk transcripts into one continuous text.
// Adjacent chunks share an audio overlap, so the next transcript usually
// repeats the tail of the previous one; the merge drops that repeated prefix
// by word-level matching. Single-element and empty inputs are returned
// unchanged.
func MergeTranscripts(texts []string, overlapWordWindow int) string {
	if len(texts) == 0 {
		return ""
	}
	if len(texts) == 1 {
		return texts[0]
	}
	if overlapWordWindow <= 0 {
		overlapWordWindow = DefaultSettings().OverlapWordWindow
	}

	merged := texts[0]
	for _, next := range texts[1:] {
		merged = mergePair(merged, next, overlapWordWindow)
	}

	return strings.TrimSpace(merged)
}

func mergePair(merged, next string, window int) string {
	if strings.TrimSpace(next) == "" {
		return merged
	}

	mergedWords := strings.Fields(merged)
	nextWords := strings.Fields(next)

	// Too little text on either side for overlap detection; plain join.
	if len(mergedWords) < window || len(nextWords) < window {
		return merged + " " + next
	}

	tail := strings.Join(mergedWords[len(mergedWords)-window:], " ")

	// Largest matching prefix wins so the most duplicated content is removed.
	overlap := 0
	for j := window; j >= 1; j-- {
		prefix := strings.Join(nextWords[:j], " ")
		if strings.Contains(tail, prefix) {
			overlap = j
			break
		}
	}

	remainder := nextWords[overlap:]
	if len(remainder) == 0 {
		return merged
	}

	return merged + " " + strings.Join(remainder, " ")
}
