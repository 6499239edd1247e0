// Delete command removes matching records.
package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <table> <filter...>",
	Short: "Delete records matching a filter",
	Long: `Delete removes every record matching the filter and prints the
count removed. Zero matches is not an error. At least one filter pair is
required; use drop to remove a whole table.

Example:
  larder delete users name=ada`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		where, err := parseWhere(args[1:])
		if err != nil {
			return err
		}
		count, err := db.Delete(args[0], where)
		if err != nil {
			return err
		}
		slog.Debug("deleted records", "table", args[0], "count", count)
		fmt.Println(count)
		return nil
	},
}
