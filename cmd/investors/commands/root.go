package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"investorparser/internal/components/telemetry"
	"investorparser/pkg/configutil"

	"github.com/spf13/cobra"
)

var (
	config  Config
	tel     telemetry.API = telemetry.SlogAPI{}
	verbose *bool

	logCloser       io.Closer
	shutdownTracing func(context.Context) error
)

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug reports.")
}

var rootCmd = &cobra.Command{
	Use:   "investors",
	Short: "investors turns saved investor profile pages into structured records.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = configutil.ReadWithDefaults(configFile, defaultConfig)
		if err != nil {
			return fmt.Errorf("read %s: %w", configFile, err)
		}

		logCloser = telemetry.InitSlog(*verbose, config.Log)

		shutdownTracing, err = telemetry.SetupTracing(cmd.Context(), "investors", config.Otlp)
		if err != nil {
			slog.Warn("tracing disabled", "err", err)
			shutdownTracing = func(context.Context) error { return nil }
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shutdownTracing != nil {
			err := shutdownTracing(context.Background())
			if err != nil {
				slog.Warn("shutdown tracing", "err", err)
			}
		}
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
