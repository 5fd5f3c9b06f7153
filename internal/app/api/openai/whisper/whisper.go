package whisper

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"memo-whisper/internal/config"
)

// RemoteTranscriber implements remote transcription through the OpenAI
// audio API.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance using the
// default whisper model.
func NewRemoteTranscriber(client *openai.Client) *RemoteTranscriber {
	return &RemoteTranscriber{
		client: client,
		model:  config.DefaultOpenAIWhisperModel,
	}
}

// Transcript sends the audio file to the OpenAI API and returns the
// transcribed text. An empty language lets the API detect it.
func (rt *RemoteTranscriber) Transcript(inputFilePath string, language string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultOpenAITimeout)
	defer cancel()

	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
		Language: language,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("createTranscription failed: %w", err)
	}

	return resp.Text, nil
}
