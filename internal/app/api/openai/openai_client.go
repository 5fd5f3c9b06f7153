package openai

import (
	"os"
	"sync"

	"github.com/sashabaranov/go-openai"
)

var (
	once      sync.Once
	singleton *openai.Client
)

// GetClient returns the process-wide OpenAI client. OPENAI_API_KEY must be
// set; OPENAI_BASE_URL optionally points the client at a compatible gateway.
func GetClient() *openai.Client {
	once.Do(func() {
		token, ok := os.LookupEnv("OPENAI_API_KEY")
		if !ok {
			panic("OPENAI_API_KEY environment variable not set")
		}

		cfg := openai.DefaultConfig(token)
		if baseURL, ok := os.LookupEnv("OPENAI_BASE_URL"); ok && baseURL != "" {
			cfg.BaseURL = baseURL
		}
		singleton = openai.NewClientWithConfig(cfg)
	})

	return singleton
}
