package fetch

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"memo-whisper/internal/config"
	"memo-whisper/internal/downloader"
)

var (
	rawURL    string
	outputDir string
)

func init() {
	Cmd.Flags().StringVarP(&rawURL, "url", "u", "",
		"Episode page or direct audio URL")
	Cmd.Flags().StringVarP(&outputDir, "output", "o", "",
		"Directory the audio is saved to, empty uses the recordings directory")

	Cmd.MarkFlagRequired("url")
}

// Cmd represents the fetch command
var Cmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch remote audio for transcription",
	Long: `Fetch remote audio for transcription.

- Direct audio URLs are downloaded as-is
- Episode pages are scraped for their audio link
- Files already present with the same size are skipped`,
	Run: func(cmd *cobra.Command, args []string) {
		dir := outputDir
		if dir == "" {
			dir = config.GetRecordingsDir()
		}

		path, err := downloader.NewFetcher().Fetch(rawURL, dir)
		if err != nil {
			log.Fatalf("Fetch failed: %v\n", err)
		}
		fmt.Printf("fetched audio to: %v\n", path)
	},
}
