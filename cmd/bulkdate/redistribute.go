package main

import (
	"strconv"
	"strings"

	"bulkdate/internal/services/redistribute/domain"

	"github.com/spf13/cobra"
)

func redistributeCmd(g *globals) *cobra.Command {
	var (
		in       domain.RunInput
		pages    string
		cats     string
		tags     string
		tax      []string
		showItem bool
	)

	cmd := &cobra.Command{
		Use:   "redistribute <tab>",
		Short: "Assign random dates to every entity of a tab",
		Long: `Assign a fresh random date inside the chosen range to every entity the tab
selects. tab is posts, pages, comments or a custom post type key.

The range is either --distribute (an epoch lower bound, now is the upper
bound) or --range "m/d/y - m/d/y". Relative tokens such as "-7 days" are
accepted on both sides of --range.`,
		Example: `  bulkdate redistribute posts --range "01/01/24 - 01/31/24" --field date_both
  bulkdate redistribute pages --pages 12,40 --range "today - today" --start 09:00 --end 17:00
  bulkdate redistribute book --tax genre=3,4 --tax-relation AND --range "-30 days - now"`,
		Args: cobra.ExactArgs(1),
		RunE: g.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			in.Tab = args[0]
			in.EnableTimeRange = cmd.Flags().Changed("start") || cmd.Flags().Changed("end")

			var err error
			if in.Pages, err = parseIDs(pages); err != nil {
				return err
			}
			if in.Categories, err = parseIDs(cats); err != nil {
				return err
			}
			in.Tags = splitCSV(tags)
			if in.Tax, err = parseTax(tax); err != nil {
				return err
			}

			rep, err := a.set.RedistributeSvc.Run(cmd.Context(), in)
			if err != nil {
				return err
			}
			if !showItem {
				rep.Items = failedOnly(rep.Items)
			}
			return g.print(rep)
		}),
	}

	f := cmd.Flags()
	f.Int64Var(&in.Distribute, "distribute", 0, "Epoch seconds lower bound; now is the upper bound")
	f.StringVar(&in.Range, "range", "", `Date range "A - B"`)
	f.StringVar(&in.StartTime, "start", "", "Earliest clock time HH:MM (enables the time window)")
	f.StringVar(&in.EndTime, "end", "", "Latest clock time HH:MM (enables the time window)")
	f.StringVar(&in.Field, "field", "modified", "Field to rewrite (published, modified, date_both)")
	f.StringVar(&pages, "pages", "", "Comma separated page ids (pages tab)")
	f.StringVar(&cats, "categories", "", "Comma separated category term ids (posts tab)")
	f.StringVar(&tags, "tags", "", "Comma separated tag slugs (posts tab)")
	f.StringArrayVar(&tax, "tax", nil, "taxonomy=id,id filter for custom types; repeatable")
	f.StringVar(&in.TaxRelation, "tax-relation", "OR", "Combine --tax filters with AND or OR")
	f.Int64Var(&in.Operator, "operator", 0, "User id recorded as the author of history rows")
	f.BoolVar(&showItem, "items", false, "List every item, not only failures")
	return cmd
}

func failedOnly(items []domain.ItemResult) []domain.ItemResult {
	out := make([]domain.ItemResult, 0)
	for _, it := range items {
		if !it.OK() {
			out = append(out, it)
		}
	}
	return out
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIDs(s string) ([]int64, error) {
	parts := splitCSV(s)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, errInvalidID(p)
		}
		out = append(out, id)
	}
	return out, nil
}

// parseTax reads repeated taxonomy=id,id values
func parseTax(vals []string) (map[string][]int64, error) {
	if len(vals) == 0 {
		return nil, nil
	}
	out := make(map[string][]int64, len(vals))
	for _, v := range vals {
		name, ids, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errInvalidTax(v)
		}
		parsed, err := parseIDs(ids)
		if err != nil {
			return nil, err
		}
		out[name] = append(out[name], parsed...)
	}
	return out, nil
}
