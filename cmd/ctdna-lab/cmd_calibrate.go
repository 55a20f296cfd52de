package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liquidbio/ctdna-lab/internal/calibrate"
	"github.com/liquidbio/ctdna-lab/internal/report"
)

var (
	calReplicates int
	calWorkers    int
	calRate       float64
	calSeed       int64
	calFormat     string
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Estimate the sampling distribution of the derived metrics",
	Long: `Generates many independent replicate datasets (unseeded unless --seed is
given) and summarizes how the headline metrics vary: mean, standard
deviation, and p50/p90/p95 per metric.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("replicates") {
			cfg.Calibration.Replicates = calReplicates
		}
		if cmd.Flags().Changed("workers") {
			cfg.Calibration.Workers = calWorkers
		}
		if cmd.Flags().Changed("rate") {
			cfg.Calibration.RatePerSecond = calRate
		}
		if cmd.Flags().Changed("seed") {
			cfg.Calibration.BaseSeed = calSeed
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		opts := []calibrate.Option{
			calibrate.WithReplicates(cfg.Calibration.Replicates),
			calibrate.WithWorkers(cfg.Calibration.Workers),
			calibrate.WithThresholds(cfg.DeriveThresholds()),
			calibrate.WithRateLimit(cfg.Calibration.RatePerSecond, cfg.Calibration.Burst),
		}
		if cfg.Calibration.BaseSeed != 0 {
			opts = append(opts, calibrate.WithBaseSeed(cfg.Calibration.BaseSeed))
		}

		textOutput := !strings.EqualFold(calFormat, "json")
		if textOutput {
			opts = append(opts, calibrate.WithProgress(makeProgressBar(cfg.Calibration.Replicates)))
		}

		res, err := calibrate.Run(cmd.Context(), opts...)
		if err != nil {
			return err
		}
		logger.Debug("calibration finished",
			zap.Int("replicates", res.Replicates),
			zap.Int64("base_seed", res.BaseSeed),
			zap.Duration("elapsed", res.Elapsed),
		)

		if !textOutput {
			payload, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal calibration result: %w", err)
			}
			fmt.Println(string(payload))
			return nil
		}

		fmt.Println()
		return report.RenderCalibration(os.Stdout, res)
	},
}

func makeProgressBar(replicates int) *progressbar.ProgressBar {
	return progressbar.NewOptions(replicates,
		progressbar.OptionSetDescription("Generating replicates"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
	)
}

func init() {
	calibrateCmd.Flags().IntVar(&calReplicates, "replicates", calibrate.DefaultReplicates, "number of replicate datasets")
	calibrateCmd.Flags().IntVar(&calWorkers, "workers", 0, "concurrent replicate generations (default: GOMAXPROCS)")
	calibrateCmd.Flags().Float64Var(&calRate, "rate", 0, "max replicates per second (0 = unthrottled)")
	calibrateCmd.Flags().Int64Var(&calSeed, "seed", 0, "base seed for reproducible runs (0 = time-seeded)")
	calibrateCmd.Flags().StringVar(&calFormat, "format", "text", "output format: text or json")
	rootCmd.AddCommand(calibrateCmd)
}
