package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/liquidbio/ctdna-lab/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ctdna-lab",
	Short: "Synthetic liquid-biopsy demo lab",
	Long: `ctdna-lab generates a small synthetic ctDNA variant dataset and a mock
QC time series, derives the headline analysis metrics, and presents them as a
terminal report, an interactive dashboard, or a replicate calibration study.

The variant dataset is reproducible (fixed seed 42); the QC series redraws on
every run. No sequencing data is read and nothing is persisted.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The dashboard owns the terminal; skip the logger there.
		if cmd.Name() == "dashboard" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML settings file")
}

// loadConfig reads the settings file from --config, falling back to defaults.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
