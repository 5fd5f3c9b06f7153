package api

// Transcriber defines a transcription interface for converting audio files to text.
// The language hint may be empty, in which case the backend auto-detects.
type Transcriber interface {
	Transcript(inputFilePath string, language string) (string, error)
}
