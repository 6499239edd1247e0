// Update command merges a patch into matching records.
package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <table> <patch-json> [filter...]",
	Short: "Update records matching a filter",
	Long: `Update merges the JSON patch into every record matching the filter.
The patch's "id" field, if present, is ignored: assigned ids are immutable.
Prints the number of records updated; zero matches is not an error.

Example:
  larder update users '{"age": 37}' name=ada`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := parseRecord(args[1])
		if err != nil {
			return err
		}
		where, err := parseWhere(args[2:])
		if err != nil {
			return err
		}
		count, err := db.Update(args[0], patch, where)
		if err != nil {
			return err
		}
		slog.Debug("updated records", "table", args[0], "count", count)
		fmt.Println(count)
		return nil
	},
}
