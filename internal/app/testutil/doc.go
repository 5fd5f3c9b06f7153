// Package testutil provides the shared test doubles for the transcription
// pipeline:
//
//   - MockTranscriber: a configurable api.Transcriber. Responses and errors
//     can be bound per file, per call index, or set as defaults, and every
//     call is recorded for inspection.
//   - MockTranscriptionDAO: an in-memory repository.TranscriptionDAO with
//     per-method error injection and recorded-row accessors.
//
// Both are safe for concurrent use, so they work under the parallel chunk
// and batch paths. Package-local fakes stay in their _test.go files; only
// doubles shared across packages live here.
package testutil
