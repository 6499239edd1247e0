// Insert command appends a record to a table.
package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert <table> <json>",
	Short: "Insert a record into a table",
	Long: `Insert appends a JSON record to the table, creating the table if
needed. A record without an "id" field is assigned the next auto-increment
value. The stored record, including the assigned id, is printed.

Example:
  larder insert users '{"name": "ada", "age": 36}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := parseRecord(args[1])
		if err != nil {
			return err
		}
		stored, err := db.Insert(args[0], rec)
		if err != nil {
			return err
		}
		slog.Debug("inserted record", "table", args[0])
		return printJSON(stored)
	},
}
