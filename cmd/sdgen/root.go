// Command sdgen generates Prometheus HTTP service-discovery target files
// from upstream service catalogs.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ragujp/prometheus-sample-configs/internal/config"
	"github.com/ragujp/prometheus-sample-configs/internal/logger"
)

var (
	flagConfig string
	flagOut    string
)

var rootCmd = &cobra.Command{
	Use:   "sdgen",
	Short: "Generate Prometheus HTTP SD target files",
	Long: `sdgen normalizes upstream service catalogs into Prometheus HTTP service
discovery target files: the Ookla speedtest server list and the EC2
reachability test pages.

Usage:
  sdgen generate [--source all]
  sdgen refresh`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	rootCmd.PersistentFlags().StringVarP(&flagOut, "out", "o", "", "Output directory for every source, overriding the configured directories.")
}

// loadConfigAndLogger loads and validates configuration, then builds the
// logger it describes.
func loadConfigAndLogger() (*config.GlobalConfig, zerolog.Logger, error) {
	cfg, err := config.LoadGlobalConfig(flagConfig)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	applyFlagOverrides(cfg)

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	zLogger, err := logger.New(cfg.LogConfig.ToOptions())
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, zLogger, nil
}

// applyFlagOverrides layers command-line settings over the loaded file.
func applyFlagOverrides(cfg *config.GlobalConfig) {
	if flagOut != "" {
		cfg.OoklaConfig.OutputDir = flagOut
		cfg.EC2Config.OutputDir = flagOut
	}
}
