package main

import (
	"fmt"
	"strconv"

	hdomain "bulkdate/internal/services/history/domain"

	"github.com/spf13/cobra"
)

func historyCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"hist"},
		Short:   "Inspect and undo recorded date changes",
	}
	cmd.AddCommand(
		historyListCmd(g),
		&cobra.Command{
			Use:   "types",
			Short: "List the entity types present in the history",
			Args:  cobra.NoArgs,
			RunE: g.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
				types, err := a.set.HistorySvc.Types(cmd.Context())
				if err != nil {
					return err
				}
				return g.print(types)
			}),
		},
		&cobra.Command{
			Use:   "restore <id>",
			Short: "Write the previous date back and drop the row",
			Args:  cobra.ExactArgs(1),
			RunE: g.withApp(func(cmd *cobra.Command, a *app, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				res, err := a.set.HistorySvc.Restore(cmd.Context(), id)
				if err != nil {
					return err
				}
				return g.print(res)
			}),
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Drop one row without restoring it",
			Args:  cobra.ExactArgs(1),
			RunE: g.withApp(func(cmd *cobra.Command, a *app, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := a.set.HistorySvc.Remove(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Record successfully deleted from history.")
				return nil
			}),
		},
		historyClearCmd(g),
		&cobra.Command{
			Use:   "sweep",
			Short: "Apply the retention policy now",
			Args:  cobra.NoArgs,
			RunE: g.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
				res, err := a.set.HistorySvc.Sweep(cmd.Context())
				if err != nil {
					return err
				}
				return g.print(res)
			}),
		},
	)
	return cmd
}

func historyListCmd(g *globals) *cobra.Command {
	var q hdomain.ListQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Page through the history, newest first",
		Args:  cobra.NoArgs,
		RunE: g.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			page, err := a.set.HistorySvc.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			return g.print(page)
		}),
	}
	f := cmd.Flags()
	f.StringVar(&q.EntityType, "type", "", "Only this post type")
	f.StringVar(&q.DateField, "field", "", "Only post_date or post_modified rows")
	f.StringVar(&q.DateFrom, "from", "", "Changed on or after YYYY-MM-DD")
	f.StringVar(&q.DateTo, "to", "", "Changed on or before YYYY-MM-DD")
	f.StringVar(&q.SortBy, "sort", hdomain.SortModifiedAt, "modified_at, previous_date or new_date")
	f.StringVar(&q.SortOrder, "order", "DESC", "ASC or DESC")
	f.IntVar(&q.Page, "page", 1, "1 based page")
	f.IntVar(&q.PageSize, "page-size", 0, "Rows per page (default CORE_HISTORY_PAGE_SIZE)")
	return cmd
}

func historyClearCmd(g *globals) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every history row",
		Args:  cobra.NoArgs,
		RunE: g.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if !yes {
				cmd.PrintErrln("Refusing to clear the history without --yes.")
				return nil
			}
			n, err := a.set.HistorySvc.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "History has been cleared successfully (%d rows).\n", n)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm clearing every row")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID(s)
	}
	return id, nil
}
