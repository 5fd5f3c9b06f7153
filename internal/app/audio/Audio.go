package audio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"memo-whisper/internal/app/model"
)

// Info describes a probed source file. DurationMs must be positive for the
// chunk planner to accept the source.
type Info struct {
	Path       string
	DurationMs int
	SizeBytes  int64
	SampleRate int
	Channels   int
	Codec      string
}

// GetAudioInfo probes filePath with ffprobe and returns its metadata.
func GetAudioInfo(filePath string) (Info, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return Info{}, fmt.Errorf("failed to stat audio file: %w", err)
	}

	cmd := exec.Command("ffprobe", "-v", "quiet", "-print_format", "json", "-show_streams", "-show_format", filePath)
	output, err := cmd.Output()
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe failed for %s: %w", filePath, err)
	}

	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return Info{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := Info{
		Path:       filePath,
		DurationMs: int(math.Round(probeOutput.Format.DurationSeconds * 1000)),
		SizeBytes:  stat.Size(),
	}
	for _, stream := range probeOutput.Streams {
		if stream.CodecType == "audio" {
			info.SampleRate = stream.SampleRate
			info.Channels = stream.Channels
			info.Codec = stream.CodecName
			break
		}
	}

	return info, nil
}

// GetAudioDuration returns the duration of filePath in whole seconds.
func GetAudioDuration(filePath string) (int, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, err
	}
	duration := int(math.Round(durationFloat))
	return duration, nil
}

// Extractor cuts time ranges out of a source file and re-encodes them to the
// format transcription backends require: mono 16-bit PCM at a fixed rate.
type Extractor struct {
	SampleRate int
	Channels   int
}

func NewExtractor(sampleRate, channels int) *Extractor {
	return &Extractor{SampleRate: sampleRate, Channels: channels}
}

// ExtractWAV writes the [startMs, endMs] range of inputPath to outputPath as WAV.
func (e *Extractor) ExtractWAV(inputPath string, startMs, endMs int, outputPath string) error {
	if endMs <= startMs {
		return fmt.Errorf("invalid extract range: start %dms >= end %dms", startMs, endMs)
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-ss", formatSeconds(startMs),
		"-to", formatSeconds(endMs),
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(e.SampleRate),
		"-ac", strconv.Itoa(e.Channels),
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
	}

	return nil
}

func formatSeconds(ms int) string {
	return strconv.FormatFloat(float64(ms)/1000.0, 'f', 3, 64)
}

// Is16kHzMonoWavFile reports whether filePath is already in the local
// whisper.cpp input format so conversion can be skipped.
func Is16kHzMonoWavFile(filePath string) (bool, error) {
	cmd := exec.Command("ffprobe", "-v", "quiet", "-print_format", "json", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return false, err
	}

	var probeOutput model.FFProbeOutput
	err = json.Unmarshal(output, &probeOutput)
	if err != nil {
		return false, err
	}

	for _, stream := range probeOutput.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" && stream.SampleRate == 16000 && stream.Channels == 1 {
			return true, nil
		}
	}

	return false, nil
}

// ConvertTo16kHzWav converts inputFilePath to a 16kHz mono WAV next to it and
// returns the output path.
func ConvertTo16kHzWav(inputFilePath string) (string, error) {
	outputFilePath := strings.TrimSuffix(inputFilePath, filepath.Ext(inputFilePath)) + "_16khz.wav"
	err := convertTo16kHzWav(inputFilePath, outputFilePath)
	if err != nil {
		return "", err
	}

	return outputFilePath, nil
}

func convertTo16kHzWav(inputAudioFilePath, outputWavPath string) error {
	if _, err := os.Stat(outputWavPath); !os.IsNotExist(err) {
		log.Printf("16kHz WAV file already exists for '%s', skipping conversion.\n", inputAudioFilePath)
		return nil
	}

	if !isConvertibleExt(inputAudioFilePath) {
		return fmt.Errorf("unsupported audio format: %s", filepath.Ext(inputAudioFilePath))
	}

	log.Printf("convert to 16kHz wav: %s\n", inputAudioFilePath)

	cmd := exec.Command("ffmpeg", "-i", inputAudioFilePath, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputWavPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
	}

	log.Printf("Audio to 16kHz WAV conversion completed: '%s'\n", outputWavPath)
	return nil
}

func isConvertibleExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".m4a", ".wav", ".mp4", ".webm", ".ogg", ".flac":
		return true
	}
	return false
}
