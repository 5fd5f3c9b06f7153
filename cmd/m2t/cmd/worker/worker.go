package worker

import (
	"log"

	"github.com/spf13/cobra"

	tworker "memo-whisper/internal/app/temporal/worker"
)

var (
	healthPort  string
	development bool
)

func init() {
	Cmd.Flags().StringVar(&healthPort, "health-port", ":8090",
		"Listen address of the worker health server, empty disables it")
	Cmd.Flags().BoolVar(&development, "dev", false,
		"Development logging")
}

// Cmd represents the worker command
var Cmd = &cobra.Command{
	Use:   "worker",
	Short: "Run a distributed transcription worker",
	Long: `Run a distributed transcription worker.

- Registers the transcription workflows and activity on the Temporal task queue
- TEMPORAL_HOST points at the cluster, default localhost:7233
- Serves worker health on --health-port`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := tworker.Run(tworker.Options{
			HealthPort:  healthPort,
			Development: development,
		}); err != nil {
			log.Fatalf("Worker failed: %v\n", err)
		}
	},
}
