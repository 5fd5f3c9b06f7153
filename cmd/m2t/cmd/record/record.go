package record

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"memo-whisper/internal/app"
	"memo-whisper/internal/app/recorder"
	"memo-whisper/internal/config"
)

var (
	name         string
	maxDuration  time.Duration
	transcribe   bool
	project      string
	providerName string
	language     string
)

func init() {
	Cmd.Flags().StringVarP(&name, "name", "n", "",
		"File name of the recording, empty uses a timestamped name")
	Cmd.Flags().DurationVar(&maxDuration, "max-duration", 2*time.Hour,
		"Recording stops by itself after this long")
	Cmd.Flags().BoolVarP(&transcribe, "transcribe", "t", false,
		"Transcribe the recording right after it stops")
	Cmd.Flags().StringVarP(&project, "project", "p", "memos",
		"Project the transcription belongs to, used with --transcribe")
	Cmd.Flags().StringVar(&providerName, "provider", "",
		"Transcription provider from providers.yaml, empty uses the default")
	Cmd.Flags().StringVarP(&language, "language", "l", "",
		"Language hint passed to the provider, empty auto-detects")
}

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Record a memo from the default input device",
	Long: `Record a memo from the default input device.

- Captures mono 16kHz WAV through ffmpeg, ready for transcription
- Stop with Ctrl+C or let --max-duration cut it off
- With --transcribe the recording goes straight through the pipeline`,
	Run: func(cmd *cobra.Command, args []string) {
		fileName := name
		if fileName == "" {
			fileName = recorder.DefaultFileName(time.Now())
		} else if filepath.Ext(fileName) == "" {
			fileName += ".wav"
		}
		outputPath := recorder.UniquePath(filepath.Join(config.GetRecordingsDir(), fileName))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("recording... press Ctrl+C to stop")
		if err := recorder.New().Record(ctx, outputPath, maxDuration); err != nil {
			log.Fatalf("Recording failed: %v\n", err)
		}
		fmt.Printf("saved recording: %v\n", outputPath)

		if !transcribe {
			return
		}

		conv, err := app.InitializeConverter(app.ProviderName(providerName), app.Language(language))
		if err != nil {
			log.Fatalf("Failed to initialize converter: %v\n", err)
		}
		defer conv.Close()

		rec, err := conv.ConvertFile(project, outputPath)
		if err != nil {
			log.Fatalf("Conversion failed: %v\n", err)
		}
		fmt.Printf("converted %v: %d/%d chunks succeeded\n", rec.FileName, rec.SuccessCount, rec.ChunkCount)
	},
}
