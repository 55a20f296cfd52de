package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liquidbio/ctdna-lab/internal/config"
	"github.com/liquidbio/ctdna-lab/internal/qc"
	"github.com/liquidbio/ctdna-lab/internal/report"
	"github.com/liquidbio/ctdna-lab/internal/variant"
)

var (
	reportFormat string
	reportVAF    float64
	reportSN     float64
	reportShow   int
	reportQCSeed int64
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the analysis once and print the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyReportFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		cache := variant.NewDatasetCache(variant.DefaultCacheSize)
		defer cache.Clear()

		gen := variant.NewGenerator()
		records := cache.GetOrGenerate(gen.Seed(), gen.Generate)

		var qcOpts []qc.Option
		if cmd.Flags().Changed("qc-seed") {
			qcOpts = append(qcOpts, qc.WithSeed(reportQCSeed))
		}
		qcRecords := qc.NewGenerator(qcOpts...).Generate()

		rep := report.Build(gen.Seed(), records, qcRecords, cfg)
		logger.Debug("report built",
			zap.Int("variants", len(rep.Variants)),
			zap.Int("qc_days", len(rep.QC.Records)),
			zap.Float64("vaf_threshold", rep.Thresholds.VAF),
			zap.Float64("sn_threshold", rep.Thresholds.SignalToNoise),
		)

		if strings.EqualFold(reportFormat, "json") {
			payload, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal report: %w", err)
			}
			fmt.Println(string(payload))
			return nil
		}
		return report.Render(os.Stdout, rep, cfg.Display.ShowCount)
	},
}

func applyReportFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("vaf") {
		cfg.Thresholds.VAFPercent = reportVAF
	}
	if cmd.Flags().Changed("sn") {
		cfg.Thresholds.SignalToNoise = reportSN
	}
	if cmd.Flags().Changed("show") {
		cfg.Display.ShowCount = reportShow
	}
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "output format: text or json")
	reportCmd.Flags().Float64Var(&reportVAF, "vaf", 0.05, "VAF reporting threshold in percent")
	reportCmd.Flags().Float64Var(&reportSN, "sn", 3.0, "signal-to-noise detection threshold")
	reportCmd.Flags().IntVar(&reportShow, "show", 5, "number of variants in the detail table")
	reportCmd.Flags().Int64Var(&reportQCSeed, "qc-seed", 0, "pin the QC series to a seed (default: redraw per run)")
	rootCmd.AddCommand(reportCmd)
}
