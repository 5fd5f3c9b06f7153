package whisper_server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"memo-whisper/internal/app/util/files"
	"memo-whisper/internal/config"
)

// maxErrorDetailLen caps how much of an error body is echoed into messages.
const maxErrorDetailLen = 500

// Config holds the connection settings for a whisper HTTP service that
// exposes an OpenAI-compatible /audio/transcriptions endpoint.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// HTTPProvider transcribes audio files against a hosted or self-hosted
// whisper server.
type HTTPProvider struct {
	config Config
	client *http.Client
}

// NewHTTPProvider creates a provider for the given server. Model and timeout
// fall back to the hosted whisper defaults when unset.
func NewHTTPProvider(cfg Config) *HTTPProvider {
	if cfg.Timeout == 0 {
		cfg.Timeout = config.DefaultWhisperServerTimeout
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultOpenAIWhisperModel
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &HTTPProvider{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// transcriptionResponse covers the field names different whisper servers use
// for the transcribed text.
type transcriptionResponse struct {
	Text          string `json:"text"`
	Transcription string `json:"transcription"`
	Result        string `json:"result"`
}

type errorResponse struct {
	Detail string `json:"detail"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Transcript uploads the audio file and returns the transcribed text. An
// empty language leaves detection to the server. An empty transcript is not
// an error here; the caller decides what an empty result means.
func (p *HTTPProvider) Transcript(inputFilePath string, language string) (string, error) {
	if err := p.ValidateAudioFile(inputFilePath); err != nil {
		return "", err
	}

	body, contentType, err := p.buildRequestBody(inputFilePath, language)
	if err != nil {
		return "", err
	}

	url := p.config.BaseURL + "/audio/transcriptions"
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if p.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper server request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read whisper server response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper server returned status %d: %s", resp.StatusCode, extractErrorDetail(data))
	}

	return parseTranscriptionText(data), nil
}

// ValidateAudioFile rejects inputs the server would refuse anyway: missing
// files, directories, empty files and unsupported extensions.
func (p *HTTPProvider) ValidateAudioFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("audio file not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat audio file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not an audio file", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("audio file is empty: %s", path)
	}
	if !files.IsAudioFile(path) {
		return fmt.Errorf("unsupported audio format %q for %s", filepath.Ext(path), path)
	}
	return nil
}

// HealthCheck verifies the server is reachable. Any response short of a
// server error counts as healthy; the endpoint itself may 404 on GET.
func (p *HTTPProvider) HealthCheck(ctx context.Context) error {
	if p.config.BaseURL == "" {
		return fmt.Errorf("whisper server base URL is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.BaseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("whisper server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError && resp.StatusCode != http.StatusServiceUnavailable {
		return fmt.Errorf("whisper server returned status %d", resp.StatusCode)
	}

	return nil
}

func (p *HTTPProvider) buildRequestBody(inputFilePath, language string) (*bytes.Buffer, string, error) {
	file, err := os.Open(inputFilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(inputFilePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy audio content: %w", err)
	}

	fields := map[string]string{
		"model":           p.config.Model,
		"response_format": "json",
	}
	if language != "" {
		fields["language"] = language
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

// parseTranscriptionText reads the transcript out of a JSON response body,
// falling back to the raw body for servers that answer in plain text.
func parseTranscriptionText(data []byte) string {
	var resp transcriptionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return strings.TrimSpace(string(data))
	}

	for _, text := range []string{resp.Text, resp.Transcription, resp.Result} {
		if text != "" {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

func extractErrorDetail(data []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(data, &resp); err == nil {
		if resp.Detail != "" {
			return resp.Detail
		}
		if resp.Error.Message != "" {
			return resp.Error.Message
		}
	}

	detail := strings.TrimSpace(string(data))
	if len(detail) > maxErrorDetailLen {
		detail = detail[:maxErrorDetailLen]
	}
	return detail
}
