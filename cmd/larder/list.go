// List command queries records from a table through the query pipeline.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/larder"
)

var (
	listOrderBy string
	listDesc    bool
	listLimit   int
	listOffset  int
)

var listCmd = &cobra.Command{
	Use:   "list <table> [filter...]",
	Short: "List records with optional filtering, ordering, and paging",
	Long: `List queries records from the table. Filters are key=value pairs,
ANDed together; values are parsed as JSON where possible. An empty filter
returns every record.

Example:
  larder list users
  larder list users age=36
  larder list users --order-by age --desc --limit 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		where, err := parseWhere(args[1:])
		if err != nil {
			return err
		}
		q, err := db.Query(args[0])
		if err != nil {
			return err
		}
		if len(where) > 0 {
			q = q.WhereAll(where)
		}
		if listOrderBy != "" {
			q = q.OrderByMultiple([]larder.SortSpec{{Field: listOrderBy, Descending: listDesc}})
		}
		rows, err := q.Offset(listOffset).Limit(listLimit).Get()
		if err != nil {
			return err
		}
		return printJSON(rows)
	},
}

func init() {
	listCmd.Flags().StringVar(&listOrderBy, "order-by", "", "sort by this field")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "sort descending")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "return at most this many records")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "skip this many records")
}
