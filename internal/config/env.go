package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	Whisper string
	OpenAI  string
	Gemini  string
}

// LoadEnv loads environment variables from .env file if it exists
// This function implements fail-fast principle - it will exit if critical configuration is missing
func LoadEnv() error {
	// Try to load .env file from current directory or project root
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Look for .env file, but don't fail if not found (environment variables might be set system-wide)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			fmt.Printf("✅ Loaded environment variables from %s\n", envPath)
			break
		}
	}

	return nil
}

// GetAPIKeys retrieves and validates API keys from environment variables
// Implements fail-fast: returns error immediately if a key is present but malformed
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		Whisper: strings.TrimSpace(os.Getenv("WHISPER_API_KEY")),
		OpenAI:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Gemini:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
	}

	// Hosted whisper servers reuse the OpenAI key when no dedicated token is set
	if apiKeys.Whisper == "" {
		apiKeys.Whisper = apiKeys.OpenAI
	}

	// Validate API keys format (basic checks)
	if apiKeys.OpenAI != "" {
		if err := ValidateAPIKey(apiKeys.OpenAI, "OpenAI"); err != nil {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY: %w", err)
		}
	}

	if apiKeys.Gemini != "" {
		if err := ValidateAPIKey(apiKeys.Gemini, "Gemini"); err != nil {
			return nil, fmt.Errorf("invalid GEMINI_API_KEY: %w", err)
		}
	}

	return apiKeys, nil
}

// ValidateAPIKeys checks which API keys are available
// Returns helpful information about available keys without failing
func ValidateAPIKeys(apiKeys *APIKeys) error {
	var availableKeys []string
	if apiKeys.Whisper != "" {
		availableKeys = append(availableKeys, "Whisper")
	}
	if apiKeys.OpenAI != "" {
		availableKeys = append(availableKeys, "OpenAI")
	}
	if apiKeys.Gemini != "" {
		availableKeys = append(availableKeys, "Gemini")
	}

	if len(availableKeys) > 0 {
		fmt.Printf("✅ API keys available: %s\n", strings.Join(availableKeys, ", "))
	} else {
		fmt.Printf("ℹ️  No API keys configured (hosted transcription and notes will be unavailable)\n")
	}

	return nil
}

// RequireNotesKeys validates that at least one LLM key is available (for notes generation)
// This implements fail-fast behavior for operations that specifically need an LLM
func RequireNotesKeys(apiKeys *APIKeys) error {
	if apiKeys.OpenAI == "" && apiKeys.Gemini == "" {
		return fmt.Errorf("notes generation requires at least one API key - please set OPENAI_API_KEY or GEMINI_API_KEY in environment or .env file")
	}
	return nil
}

// GetDataDir returns the base directory for recordings and transcription projects
func GetDataDir() string {
	if dir := strings.TrimSpace(os.Getenv("MEMO_DATA_DIR")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "memo-whisper")
	}
	return filepath.Join(home, "memo-whisper")
}

// GetTranscriptionsDir returns the directory holding transcription projects
func GetTranscriptionsDir() string {
	return filepath.Join(GetDataDir(), "transcriptions")
}

// GetRecordingsDir returns the directory new recordings are written to
func GetRecordingsDir() string {
	return filepath.Join(GetDataDir(), "recordings")
}

// GetProjectRoot finds the project root directory by looking for go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}

// InitializeConfig loads environment and validates configuration
// This is the main entry point for configuration loading
func InitializeConfig() (*APIKeys, error) {
	// Load .env file if available
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Get and validate API keys
	apiKeys, err := GetAPIKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	// Show available keys without failing
	ValidateAPIKeys(apiKeys)

	return apiKeys, nil
}
