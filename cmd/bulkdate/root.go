package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"bulkdate/internal/core/version"
	"bulkdate/internal/platform/config"
	"bulkdate/internal/platform/logger"
	"bulkdate/internal/services/wiring"

	"github.com/spf13/cobra"
)

const appName = "bulkdate"

type globals struct {
	configPath string
	output     string
	logLevel   string
	out        io.Writer
}

// app is the opened runtime plus the module graph
type app struct {
	rt  *wiring.Runtime
	set wiring.Set
	log logger.Logger
}

func (g *globals) open(ctx context.Context) (*app, error) {
	if g.configPath != "" {
		if err := config.Load(g.configPath); err != nil {
			return nil, err
		}
	} else if err := config.LoadFromEnv(); err != nil {
		return nil, err
	}

	logger.Init(logger.Options{
		Level:     g.logLevel,
		Format:    "console",
		Service:   appName,
		Component: "cli",
		Writer:    os.Stderr,
	})
	log := *logger.Get()

	root := config.New()
	rt, err := wiring.Open(ctx, root, "cli", log)
	if err != nil {
		return nil, err
	}
	return &app{rt: rt, set: wiring.Build(rt.Deps(root)), log: log}, nil
}

func (a *app) close() {
	if err := a.rt.Close(context.Background()); err != nil {
		a.log.Error().Err(err).Msg("failed to close store")
	}
}

// withApp opens the runtime for one command and closes it afterwards
func (g *globals) withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := g.open(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cmd, a, args)
	}
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Redistribute WordPress-style post, page and comment dates",
		Long: `bulkdate assigns random dates inside an operator chosen range to posts,
pages, custom post types and comments, and keeps an undoable history of
every post date it rewrites.

Configuration is read from the environment (SERVICE_*, SITE_*, CORE_*) with
an optional YAML file layer given by --config or CONFIG_FILE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			g.out = cmd.OutOrStdout()
		},
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVarP(&g.output, "output", "o", "yaml", "Output format (yaml, json)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		migrateCmd(g),
		redistributeCmd(g),
		historyCmd(g),
		settingsCmd(g),
		presetsCmd(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.Info(appName).String())
			},
		},
	)
	return cmd
}

func migrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables and seed missing plugin options",
		Args:  cobra.NoArgs,
		RunE: g.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := wiring.Migrate(cmd.Context(), a.rt.Store, a.set.SettingsSvc, a.log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		}),
	}
}

func presetsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Show the quick ranges and distribute offsets for now",
		Args:  cobra.NoArgs,
		RunE: g.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			return g.print(a.set.RedistributeSvc.Presets(time.Now()))
		}),
	}
}
