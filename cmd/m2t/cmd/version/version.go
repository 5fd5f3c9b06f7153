package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "v0.3.0"

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of memo-whisper",
	Long:  `All software has versions. This is memo-whisper's.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printVersion()
		return nil
	},
}

func printVersion() {
	fmt.Println(version)
}
