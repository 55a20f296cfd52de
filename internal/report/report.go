// Package report assembles the one-shot analysis report from the generated
// datasets and renders it for the terminal or as JSON. It only consumes the
// core packages; nothing here writes back into them.
package report

import (
	"math"
	"time"

	"github.com/liquidbio/ctdna-lab/internal/config"
	"github.com/liquidbio/ctdna-lab/internal/derive"
	"github.com/liquidbio/ctdna-lab/internal/qc"
	"github.com/liquidbio/ctdna-lab/internal/variant"
)

// VariantDetail is one dataset record plus its derived labels.
type VariantDetail struct {
	variant.Record
	// HighConfidenceCall is the per-call label. With the default settings
	// it uses the fixed rule (S/N > 3.0, artifact < 0.3); with
	// classify_with_detection_thresholds it uses the configured S/N cutoff.
	HighConfidenceCall bool `json:"high_confidence_call"`
	// Reportable means the VAF meets the configured reporting threshold.
	Reportable bool `json:"reportable"`
}

// QCSummary is the QC series plus its aggregates.
type QCSummary struct {
	Records            []qc.Record `json:"records"`
	MeanDepth          float64     `json:"mean_depth"`
	MeanValidationRate float64     `json:"mean_validation_rate"`
	MeanArtifactRate   float64     `json:"mean_artifact_rate"`
	// DaysOverArtifactLimit counts days above qc.ArtifactRateLimit.
	DaysOverArtifactLimit int `json:"days_over_artifact_limit"`
}

// Report is the full analysis output.
type Report struct {
	GeneratedAt        time.Time         `json:"generated_at"`
	Seed               int64             `json:"seed"`
	Thresholds         derive.Thresholds `json:"thresholds"`
	ClassifyWithDetect bool              `json:"classify_with_detection_thresholds"`
	Metrics            derive.Metrics    `json:"metrics"`
	Variants           []VariantDetail   `json:"variants"`
	QC                 QCSummary         `json:"qc"`
}

// Build derives every report value from the two datasets. It does not
// generate anything itself; callers own dataset production and caching.
func Build(seed int64, records []variant.Record, qcRecords []qc.Record, cfg config.Config) Report {
	thresholds := cfg.DeriveThresholds()

	details := make([]VariantDetail, 0, len(records))
	for _, r := range records {
		call := derive.HighConfidenceCall(r)
		if cfg.Thresholds.ClassifyWithDetection {
			call = r.SignalToNoise > thresholds.SignalToNoise &&
				r.ArtifactProb < derive.CallArtifactThreshold
		}
		details = append(details, VariantDetail{
			Record:             r,
			HighConfidenceCall: call,
			Reportable:         r.VAFPercent >= thresholds.VAF,
		})
	}

	return Report{
		GeneratedAt:        time.Now().UTC(),
		Seed:               seed,
		Thresholds:         thresholds,
		ClassifyWithDetect: cfg.Thresholds.ClassifyWithDetection,
		Metrics:            derive.Summary(records, thresholds),
		Variants:           details,
		QC:                 summarizeQC(qcRecords),
	}
}

func summarizeQC(records []qc.Record) QCSummary {
	s := QCSummary{Records: records, MeanDepth: math.NaN(), MeanValidationRate: math.NaN(), MeanArtifactRate: math.NaN()}
	if len(records) == 0 {
		return s
	}

	var depth, validation, artifact float64
	for _, r := range records {
		depth += r.AvgDepth
		validation += r.ValidationRate
		artifact += r.ArtifactRate
		if r.ArtifactRate > qc.ArtifactRateLimit {
			s.DaysOverArtifactLimit++
		}
	}
	n := float64(len(records))
	s.MeanDepth = depth / n
	s.MeanValidationRate = validation / n
	s.MeanArtifactRate = artifact / n
	return s
}
