package notes

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"memo-whisper/internal/app"
	openaiapi "memo-whisper/internal/app/api/openai"
	appnotes "memo-whisper/internal/app/notes"
	"memo-whisper/internal/app/project"
	"memo-whisper/internal/config"
)

var (
	projectDir   string
	providerName string
	model        string
	force        bool
)

func init() {
	Cmd.Flags().StringVarP(&projectDir, "project", "p", "",
		"Project directory name under the transcriptions directory, empty uses the newest")
	Cmd.Flags().StringVar(&providerName, "provider", "",
		"Notes backend: openai or gemini, empty picks by available API key")
	Cmd.Flags().StringVarP(&model, "model", "m", "",
		"Chat model used for the notes, empty uses the backend's default")
	Cmd.Flags().BoolVar(&force, "force", false,
		"Regenerate notes even when the project already has them")
}

// Cmd represents the notes command
var Cmd = &cobra.Command{
	Use:   "notes",
	Short: "Generate meeting notes from a project's transcript",
	Long: `Generate meeting notes from a project's transcript.

- Reads the merged transcript from the project directory
- Summarizes it into markdown notes with decisions and action items
- Requires OPENAI_API_KEY or GEMINI_API_KEY`,
	Run: func(cmd *cobra.Command, args []string) {
		store := app.InitializeProjectStore()

		var proj *project.Project
		var err error
		if projectDir == "" {
			proj, err = store.Latest()
		} else {
			proj, err = store.Open(projectDir)
		}
		if err != nil {
			log.Fatalf("Failed to open project: %v\n", err)
		}

		if proj.HasNotes() && !force {
			log.Fatalf("notes already exist at %v, use --force to regenerate\n", proj.NotesPath())
		}

		transcript, err := proj.ReadTranscript()
		if err != nil {
			log.Fatalf("Failed to read transcript: %v\n", err)
		}

		ctx := context.Background()
		generator, err := newGenerator(ctx)
		if err != nil {
			log.Fatalf("Failed to create notes generator: %v\n", err)
		}

		fmt.Printf("generating notes for project %v...\n", proj.Name)
		markdown, err := generator.GenerateNotes(ctx, transcript)
		if err != nil {
			log.Fatalf("Notes generation failed: %v\n", err)
		}

		if err := proj.SaveNotes(markdown); err != nil {
			log.Fatalf("Failed to save notes: %v\n", err)
		}
		fmt.Printf("notes saved to: %v\n", proj.NotesPath())
	},
}

func newGenerator(ctx context.Context) (appnotes.Generator, error) {
	apiKeys, err := config.GetAPIKeys()
	if err != nil {
		return nil, err
	}
	if err := config.RequireNotesKeys(apiKeys); err != nil {
		return nil, err
	}

	switch providerName {
	case "openai":
		if apiKeys.OpenAI == "" {
			return nil, fmt.Errorf("openai notes backend requires OPENAI_API_KEY")
		}
		return appnotes.NewOpenAIGenerator(openaiapi.GetClient(), model), nil
	case "gemini":
		return appnotes.NewGeminiGenerator(ctx, apiKeys.Gemini, model)
	case "":
		if apiKeys.OpenAI != "" {
			return appnotes.NewOpenAIGenerator(openaiapi.GetClient(), model), nil
		}
		return appnotes.NewGeminiGenerator(ctx, apiKeys.Gemini, model)
	default:
		return nil, fmt.Errorf("unknown notes backend %q, expected openai or gemini", providerName)
	}
}
