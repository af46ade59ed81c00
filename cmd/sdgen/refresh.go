package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ragujp/prometheus-sample-configs/internal/config"
	"github.com/ragujp/prometheus-sample-configs/internal/scheduler"
)

var flagInterval int

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run the generation pipeline periodically",
	Long: `Refresh runs every enabled source on a fixed cycle until interrupted.
The configuration file is watched and reloaded between cycles.

Examples:
  sdgen refresh
  sdgen refresh --interval 60
  sdgen refresh --config ./config.yaml`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)

	refreshCmd.Flags().IntVarP(&flagInterval, "interval", "i", 0, "Cycle length in minutes, overriding the configured value")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	_, zLogger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	opts := config.DefaultConfigManagerOptions()
	opts.Logger = zLogger
	opts.HotReloadEnabled = true
	opts.Overrides = applyFlagOverrides

	configManager, err := config.NewConfigManager(flagConfig, opts)
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}
	defer func() { _ = configManager.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configManager.StartHotReload(ctx)

	s := scheduler.NewScheduler(configManager, zLogger)
	if flagInterval > 0 {
		s.OverrideCycleMinutes(flagInterval)
	}

	zLogger.Info().Msg("Starting periodic refresh, press Ctrl+C to stop")
	return s.Start(ctx)
}
