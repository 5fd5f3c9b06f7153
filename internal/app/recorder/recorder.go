package recorder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Recorder captures a memo from the system's default input device by driving
// ffmpeg. Output is mono 16-bit PCM WAV at the transcription sample rate, so
// recordings feed straight into the conversion pipeline.
type Recorder struct {
	SampleRate  int
	Channels    int
	InputFormat string
	Device      string

	run func(ctx context.Context, args []string) error
}

// New returns a recorder configured for the current platform's default
// capture device.
func New() *Recorder {
	format, device := defaultInput(runtime.GOOS)
	return &Recorder{
		SampleRate:  16000,
		Channels:    1,
		InputFormat: format,
		Device:      device,
		run:         runFFmpeg,
	}
}

// defaultInput maps the platform to ffmpeg's capture format and the default
// device name that format expects.
func defaultInput(goos string) (format, device string) {
	switch goos {
	case "darwin":
		return "avfoundation", ":0"
	case "windows":
		return "dshow", "audio=Microphone"
	default:
		return "alsa", "default"
	}
}

// Record captures up to maxDuration of audio into outputPath. Cancelling the
// context stops the recording early and keeps what was captured so far.
func (r *Recorder) Record(ctx context.Context, outputPath string, maxDuration time.Duration) error {
	if maxDuration <= 0 {
		return fmt.Errorf("recording duration must be positive, got %s", maxDuration)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create recordings directory: %w", err)
	}

	args := r.buildArgs(outputPath, maxDuration)
	log.Printf("Recording to %s (%s, max %s)", outputPath, r.InputFormat, maxDuration)
	return r.run(ctx, args)
}

// buildArgs assembles the ffmpeg capture command line.
func (r *Recorder) buildArgs(outputPath string, maxDuration time.Duration) []string {
	return []string{
		"-y",
		"-f", r.InputFormat,
		"-i", r.Device,
		"-t", strconv.FormatFloat(maxDuration.Seconds(), 'f', -1, 64),
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(r.SampleRate),
		"-ac", strconv.Itoa(r.Channels),
		outputPath,
	}
}

// runFFmpeg executes the capture. On cancellation ffmpeg gets an interrupt
// first so it can finalize the WAV header; the kill only follows if it hangs.
func runFFmpeg(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = 5 * time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
	}
	return nil
}

// DefaultFileName returns the timestamped name used when the caller does not
// name the memo.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("recording_%s.wav", now.Format("2006-01-02_15-04-05"))
}

// UniquePath adds a _01, _02, ... counter before the extension until the path
// is free. After 999 collisions it falls back to a timestamp suffix.
func UniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for counter := 1; counter <= 999; counter++ {
		candidate := fmt.Sprintf("%s_%02d%s", stem, counter, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
	return fmt.Sprintf("%s_%s%s", stem, time.Now().Format("20060102_150405"), ext)
}
