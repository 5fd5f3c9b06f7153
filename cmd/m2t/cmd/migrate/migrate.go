package migrate

import (
	"log"

	"github.com/spf13/cobra"

	"memo-whisper/internal/app/repository/migrate"
)

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy the local SQLite history into PostgreSQL",
	Long: `Copy the local SQLite history into PostgreSQL.

- Connection comes from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME
- Progress is checkpointed under the data directory, rerun to resume`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := migrate.MigrateToPostgres(); err != nil {
			log.Fatalf("Migration failed: %v\n", err)
		}
	},
}
