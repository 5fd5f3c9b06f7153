package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"memo-whisper/cmd/m2t/cmd/convert"
	"memo-whisper/cmd/m2t/cmd/export"
	"memo-whisper/cmd/m2t/cmd/fetch"
	"memo-whisper/cmd/m2t/cmd/migrate"
	"memo-whisper/cmd/m2t/cmd/notes"
	"memo-whisper/cmd/m2t/cmd/record"
	"memo-whisper/cmd/m2t/cmd/serve"
	"memo-whisper/cmd/m2t/cmd/version"
	"memo-whisper/cmd/m2t/cmd/worker"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "m2t",
	Short: "Transcribe meeting and memo recordings to text",
	Long: `Transcribe meeting and memo recordings to text.

- Record a memo, fetch an episode, or point m2t at existing audio files
- Long recordings are split into provider-sized chunks and merged back together
- Transcripts, notes and conversion records land in per-project directories
  and the local database`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(record.Cmd)
	rootCmd.AddCommand(fetch.Cmd)
	rootCmd.AddCommand(convert.Cmd)
	rootCmd.AddCommand(notes.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(migrate.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(worker.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
