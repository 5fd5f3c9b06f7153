package main

import (
	"fmt"
	"os"

	"memo-whisper/cmd/m2t/cmd"
	"memo-whisper/internal/config"
)

func main() {
	// Initialize configuration (non-blocking - only warns about missing keys)
	apiKeys, err := config.InitializeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration Warning: %v\n", err)
		fmt.Fprintf(os.Stderr, "💡 Copy .env.example to .env and add your API keys to enable remote providers\n")
		// Continue execution - don't exit
	} else {
		// Re-export so provider clients created later in the process see them
		if apiKeys.OpenAI != "" {
			os.Setenv("OPENAI_API_KEY", apiKeys.OpenAI)
		}
		if apiKeys.Gemini != "" {
			os.Setenv("GEMINI_API_KEY", apiKeys.Gemini)
		}
	}

	// Execute the CLI command
	cmd.Execute()
}
