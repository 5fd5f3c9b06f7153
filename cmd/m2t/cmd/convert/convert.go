package convert

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"memo-whisper/internal/app"
)

var (
	project      string
	filePath     string
	inputDir     string
	providerName string
	language     string
	count        int
	parallel     int
)

func init() {
	Cmd.Flags().StringVarP(&project, "project", "p", "",
		"Project the transcriptions belong to, also names the output directory")
	Cmd.Flags().StringVarP(&filePath, "file", "f", "",
		"Path of a single audio file to transcribe")
	Cmd.Flags().StringVarP(&inputDir, "dir", "d", "",
		"Directory of audio files to transcribe, example: ~/memo-whisper/recordings")
	Cmd.Flags().StringVar(&providerName, "provider", "",
		"Transcription provider from providers.yaml, empty uses the default")
	Cmd.Flags().StringVarP(&language, "language", "l", "",
		"Language hint passed to the provider, empty auto-detects")
	Cmd.Flags().IntVarP(&count, "count", "c", 500,
		"Maximum number of unprocessed files to convert from the directory")
	Cmd.Flags().IntVar(&parallel, "parallel", 1,
		"Number of files converted concurrently")

	Cmd.MarkFlagRequired("project")
}

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Transcribe one audio file or a directory of recordings",
	Long: `Transcribe one audio file or a directory of recordings.

- Files over the provider's upload limit are split into chunks and merged back
- Each conversion is recorded in the local database and skipped on the next run
- Transcripts are written into the project directory`,
	Run: func(cmd *cobra.Command, args []string) {
		if filePath == "" && inputDir == "" {
			log.Fatal("either --file or --dir must be set")
		}

		conv, err := app.InitializeConverter(app.ProviderName(providerName), app.Language(language))
		if err != nil {
			log.Fatalf("Failed to initialize converter: %v\n", err)
		}
		defer conv.Close()

		if filePath != "" {
			rec, err := conv.ConvertFile(project, filePath)
			if err != nil {
				log.Fatalf("Conversion failed: %v\n", err)
			}
			fmt.Printf("converted %v: %d/%d chunks succeeded\n", rec.FileName, rec.SuccessCount, rec.ChunkCount)
			if rec.ErrorMessage != "" {
				fmt.Printf("with failures: %v\n", rec.ErrorMessage)
			}
			return
		}

		result, err := conv.ConvertDirectory(project, inputDir, count, parallel)
		if err != nil {
			log.Fatalf("Conversion failed: %v\n", err)
		}
		fmt.Printf("converted %d files: %d succeeded, %d partial, %d failed, %d skipped\n",
			result.Total, result.Succeeded, result.Partial, result.Failed, result.Skipped)
	},
}
