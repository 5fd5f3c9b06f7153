package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Generator turns a raw transcript into structured meeting notes.
type Generator interface {
	GenerateNotes(ctx context.Context, transcript string) (string, error)
}

// ErrEmptyTranscript is returned when there is nothing to summarize.
var ErrEmptyTranscript = errors.New("transcript is empty")

const systemPrompt = `You are an assistant that writes structured meeting notes from raw transcripts.
Produce markdown with a one-paragraph summary, key discussion points, decisions,
and action items with owners when the transcript names them.
Answer in the language of the transcript.`

// Sampling parameters for notes generation. Low temperature keeps the notes
// anchored to the transcript.
const (
	notesTemperature = 0.2
	notesTopP        = 0.7
	notesMaxTokens   = 1024
)

// BuildPrompt assembles the user message for a notes request.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf("Write meeting notes for the following transcription.\n\nTranscription:\n%s",
		strings.TrimSpace(transcript))
}
