// Drop command removes a table and its counter.
package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop <table>",
	Short: "Drop a table and its auto-increment counter",
	Long: `Drop removes the table and its counter entirely. A recreated table
starts counting ids from 1 again. Dropping a table that does not exist
succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.DropTable(args[0]); err != nil {
			return err
		}
		slog.Debug("dropped table", "table", args[0])
		return nil
	},
}
