package export

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"memo-whisper/internal/app"
	"memo-whisper/internal/app/converter/export"
)

var (
	project        string
	outputFilePath string
)

func init() {
	Cmd.Flags().StringVarP(&project, "project", "p", "", "Project whose transcriptions get exported")
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "Output file, .xlsx or .txt")

	Cmd.MarkFlagRequired("project")
	Cmd.MarkFlagRequired("output")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export a project's transcriptions to excel or plain text",
	Long: `Export a project's transcriptions to excel or plain text.

- Exports every successful transcription of the project, newest first
- The output extension picks the format: .txt for plain text, anything else excel`,
	Run: func(cmd *cobra.Command, args []string) {
		db := app.InitializeTranscriptionDAO()
		defer db.Close()

		transcriptions, err := db.GetAllByProject(project)
		if err != nil {
			log.Fatalf("Failed to load transcriptions: %v\n", err)
		}
		if len(transcriptions) == 0 {
			log.Fatalf("no transcriptions found for project %q\n", project)
		}

		switch strings.ToLower(filepath.Ext(outputFilePath)) {
		case ".txt":
			err = export.ToText(transcriptions, outputFilePath)
		default:
			err = export.ToExcel(transcriptions, outputFilePath)
		}
		if err != nil {
			log.Fatalf("Export failed: %v\n", err)
		}

		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
