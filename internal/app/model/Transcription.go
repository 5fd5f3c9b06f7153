package model

import "time"

// Transcription is one finished conversion of a source file, as stored by the DAO.
type Transcription struct {
	ID                 int
	Project            string
	FileName           string
	AudioDurationMs    int
	ChunkCount         int
	SuccessCount       int
	Transcript         string
	Provider           string
	Language           string
	LastConversionTime time.Time
	ErrorMessage       string
}

// Partial reports whether some but not all chunks of this transcription succeeded.
func (t *Transcription) Partial() bool {
	return t.SuccessCount > 0 && t.SuccessCount < t.ChunkCount
}
