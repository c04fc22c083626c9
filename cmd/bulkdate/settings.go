package main

import (
	"fmt"
	"strconv"

	setdomain "bulkdate/internal/services/settings/domain"

	"github.com/spf13/cobra"
)

func settingsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the plugin settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current settings",
			Args:  cobra.NoArgs,
			RunE: g.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
				s, err := a.set.SettingsSvc.Get(cmd.Context())
				if err != nil {
					return err
				}
				return g.print(s)
			}),
		},
		settingsSetCmd(g),
		&cobra.Command{
			Use:     "tab <tab> <on|off>",
			Short:   "Enable or disable a tab",
			Example: "  bulkdate settings tab comments off",
			Args:    cobra.ExactArgs(2),
			RunE: g.withApp(func(cmd *cobra.Command, a *app, args []string) error {
				on, err := strconv.ParseBool(onOff(args[1]))
				if err != nil {
					return errInvalidToggle(args[1])
				}
				res, err := a.set.SettingsSvc.ToggleTab(cmd.Context(), setdomain.ToggleInput{Tab: args[0], Enabled: on})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				return nil
			}),
		},
	)
	return cmd
}

func settingsSetCmd(g *globals) *cobra.Command {
	var (
		history   string
		retention int
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change history tracking and retention",
		Args:  cobra.NoArgs,
		RunE: g.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			in := setdomain.UpdateInput{RetentionDays: retention}
			if cmd.Flags().Changed("history") {
				on, err := strconv.ParseBool(onOff(history))
				if err != nil {
					return errInvalidToggle(history)
				}
				in.HistoryEnabled = &on
			}
			s, err := a.set.SettingsSvc.Update(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings updated successfully.")
			return g.print(s)
		}),
	}
	cmd.Flags().StringVar(&history, "history", "", "on or off")
	cmd.Flags().IntVar(&retention, "retention", 0, "Days to keep history rows (7, 14, 30, 60)")
	return cmd
}

func onOff(s string) string {
	switch s {
	case "on", "yes", "enable", "enabled":
		return "true"
	case "off", "no", "disable", "disabled":
		return "false"
	}
	return s
}
