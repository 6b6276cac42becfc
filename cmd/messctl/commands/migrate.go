package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/messbook/internal/storage/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply SQLite schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sqlite.RunMigrations(settings.DBPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s\n", settings.DBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
