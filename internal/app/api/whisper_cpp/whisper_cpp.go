package whisper_cpp

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"memo-whisper/internal/app/audio"
	"memo-whisper/internal/app/util/files"
	"memo-whisper/internal/config"
)

// LocalTranscriber implements local transcription by shelling out to a
// whisper.cpp binary.
type LocalTranscriber struct {
	binaryPath string
	modelPath  string
	prompt     string
}

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(binaryPath, modelPath string) *LocalTranscriber {
	return &LocalTranscriber{
		binaryPath: binaryPath,
		modelPath:  modelPath,
	}
}

// WithPrompt sets an initial prompt passed to the model, useful for steering
// vocabulary and punctuation.
func (lt *LocalTranscriber) WithPrompt(prompt string) *LocalTranscriber {
	lt.prompt = prompt
	return lt
}

// Transcript runs the whisper.cpp binary on the input file and returns the
// transcribed text. Inputs that are not already 16kHz mono WAV are converted
// first. An empty language enables auto-detection.
func (lt *LocalTranscriber) Transcript(inputFilePath string, language string) (string, error) {
	log.Printf("Starting transcription of file %s\n", inputFilePath)

	is16kHzWav, err := audio.Is16kHzMonoWavFile(inputFilePath)
	if err != nil {
		return "", fmt.Errorf("error checking input file: %w", err)
	}

	if !is16kHzWav {
		log.Printf("Input file is not a 16kHz mono WAV file, converting...\n")
		inputFilePath, err = audio.ConvertTo16kHzWav(inputFilePath)
		if err != nil {
			return "", fmt.Errorf("error converting input file: %w", err)
		}
	}

	outputDir, err := os.MkdirTemp("", "m2t-whisper-*")
	if err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	defer os.RemoveAll(outputDir)
	outputBase := filepath.Join(outputDir, "transcript")

	args := lt.buildArgs(inputFilePath, outputBase, language)
	command := exec.Command(lt.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	log.Printf("Running transcription command: %s %s", lt.binaryPath, strings.Join(args, " "))

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("command execution error: %w, stderr: %s", err, stderr.String())
	}

	output, err := files.ReadOutputFile(outputBase + ".txt")
	if err != nil {
		return "", fmt.Errorf("failed to read output file: %w", err)
	}

	return strings.TrimSpace(output), nil
}

// buildArgs assembles the whisper.cpp command line. An empty language maps
// to the binary's auto-detection mode.
func (lt *LocalTranscriber) buildArgs(inputFilePath, outputBase, language string) []string {
	if language == "" {
		language = "auto"
	}

	args := []string{
		"-m", lt.modelPath,
		"-l", language,
		"-otxt",
		"-f", inputFilePath,
		"-of", outputBase,
	}
	if lt.prompt != "" {
		args = append(args, "--prompt", lt.prompt)
	}
	return args
}

// CheckBinary verifies the configured binary and model exist before any
// transcription is attempted.
func (lt *LocalTranscriber) CheckBinary() error {
	if _, err := os.Stat(lt.binaryPath); err != nil {
		return fmt.Errorf("whisper.cpp binary not found at %s: %w", lt.binaryPath, err)
	}
	if _, err := os.Stat(lt.modelPath); err != nil {
		return fmt.Errorf("whisper model not found at %s (expected e.g. %s): %w",
			lt.modelPath, config.DefaultWhisperCppModel, err)
	}
	return nil
}
