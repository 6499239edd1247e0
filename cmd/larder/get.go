// Get command fetches one record by id.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <table> <id>",
	Short: "Fetch a record by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[1], err)
		}
		rec, err := db.FindByID(args[0], id)
		if err != nil {
			return err
		}
		return printJSON(rec)
	},
}
