package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-pos-terminal/internal/app"
	"github.com/MKhiriev/go-pos-terminal/internal/config"
	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/models"
	"github.com/spf13/cobra"
)

const logFileFlag = "log-file"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "terminal",
		Short:         "Offline-first point-of-sale terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().String(logFileFlag, "", "Log file path (default: pos-terminal.log next to the binary)")

	catalog := &cobra.Command{Use: "catalog", Short: "Offline catalog maintenance"}
	catalog.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Replace the local catalog with the remote one",
		Args:  cobra.NoArgs,
		RunE:  withApp(refreshCatalog),
	})

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the local API and sync sales in the background (default)",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "drain",
			Short: "Probe the remote side and run one drain cycle",
			Args:  cobra.NoArgs,
			RunE:  withApp(drainOnce),
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Print pending and error queue counts",
			Args:  cobra.NoArgs,
			RunE:  withApp(printStats),
		},
		&cobra.Command{
			Use:   "recover",
			Short: "Reset errored queue entries and requeue lost sales",
			Args:  cobra.NoArgs,
			RunE:  withApp(forceRecovery),
		},
		catalog,
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), buildInfo().String())
			},
		},
	)

	return root
}

func buildInfo() models.AppBuildInfo {
	version := buildVersion
	if version == "" {
		version = "dev"
	}
	return models.NewAppBuildInfo(version, buildDate, buildCommit)
}

// newApp loads the configuration from env, flags and the optional JSON file
// and wires the terminal.
func newApp(cmd *cobra.Command) (*app.App, *logger.Logger, error) {
	logPath, _ := cmd.Flags().GetString(logFileFlag)
	log := logger.NewFileLogger("pos-terminal", logPath)

	cfg, err := config.GetTerminalConfig(cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("error getting configs: %w", err)
	}
	log.Debug().Any("config", redacted(*cfg)).Msg("received configs")

	a, err := app.NewApp(cmd.Context(), cfg, buildInfo(), log)
	if err != nil {
		return nil, nil, err
	}
	return a, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	a, log, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info().Str("build", buildInfo().String()).Msg("terminal starting")
	return a.Run(ctx)
}

type appCommand func(ctx context.Context, a *app.App, out io.Writer) error

func withApp(fn appCommand) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return fn(cmd.Context(), a, cmd.OutOrStdout())
	}
}

func drainOnce(ctx context.Context, a *app.App, out io.Writer) error {
	report, err := a.DrainOnce(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, report)
}

func printStats(ctx context.Context, a *app.App, out io.Writer) error {
	stats, err := a.Services().StatusService.GetSyncStats(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, stats)
}

func forceRecovery(ctx context.Context, a *app.App, out io.Writer) error {
	report, err := a.Services().RecoveryService.ForceRecovery(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, report)
}

func refreshCatalog(ctx context.Context, a *app.App, out io.Writer) error {
	if !a.Services().CatalogService.RefreshFromRemote(ctx) {
		return fmt.Errorf("catalog refresh failed, local catalog kept")
	}
	_, err := fmt.Fprintln(out, "catalog refreshed")
	return err
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// redacted hides the API token from debug logs.
func redacted(cfg config.TerminalConfig) config.TerminalConfig {
	if cfg.Adapter.APIToken != "" {
		cfg.Adapter.APIToken = "***"
	}
	return cfg
}
