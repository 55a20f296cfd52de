package report_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/liquidbio/ctdna-lab/internal/calibrate"
	"github.com/liquidbio/ctdna-lab/internal/config"
	"github.com/liquidbio/ctdna-lab/internal/qc"
	"github.com/liquidbio/ctdna-lab/internal/report"
	"github.com/liquidbio/ctdna-lab/internal/variant"
)

func demoInputs() ([]variant.Record, []qc.Record) {
	return variant.NewGenerator().Generate(), qc.NewGenerator(qc.WithSeed(7)).Generate()
}

func TestBuild_FixedRuleLabels(t *testing.T) {
	records, qcRecords := demoInputs()
	rep := report.Build(variant.DefaultSeed, records, qcRecords, config.Default())

	if len(rep.Variants) != len(records) {
		t.Fatalf("expected %d details, got %d", len(records), len(rep.Variants))
	}
	for i, v := range rep.Variants {
		want := v.SignalToNoise > 3.0 && v.ArtifactProb < 0.3
		if v.HighConfidenceCall != want {
			t.Errorf("variant %d: call label %v, expected fixed rule %v", i, v.HighConfidenceCall, want)
		}
		if got := v.VAFPercent >= rep.Thresholds.VAF; v.Reportable != got {
			t.Errorf("variant %d: reportable %v, expected %v", i, v.Reportable, got)
		}
	}
}

func TestBuild_DetectionRuleLabels(t *testing.T) {
	records, qcRecords := demoInputs()
	cfg := config.Default()
	cfg.Thresholds.SignalToNoise = 6.0
	cfg.Thresholds.ClassifyWithDetection = true

	rep := report.Build(variant.DefaultSeed, records, qcRecords, cfg)

	if !rep.ClassifyWithDetect {
		t.Error("report does not mark the detection-threshold rule")
	}
	for i, v := range rep.Variants {
		want := v.SignalToNoise > 6.0 && v.ArtifactProb < 0.3
		if v.HighConfidenceCall != want {
			t.Errorf("variant %d: call label %v, expected detection rule %v", i, v.HighConfidenceCall, want)
		}
	}
}

func TestBuild_QCSummary(t *testing.T) {
	records, qcRecords := demoInputs()
	rep := report.Build(variant.DefaultSeed, records, qcRecords, config.Default())

	if len(rep.QC.Records) != qc.WindowDays {
		t.Fatalf("expected %d QC records, got %d", qc.WindowDays, len(rep.QC.Records))
	}

	var validation float64
	over := 0
	for _, r := range qcRecords {
		validation += r.ValidationRate
		if r.ArtifactRate > qc.ArtifactRateLimit {
			over++
		}
	}
	wantMean := validation / float64(len(qcRecords))
	if math.Abs(rep.QC.MeanValidationRate-wantMean) > 1e-12 {
		t.Errorf("mean validation rate %v, want %v", rep.QC.MeanValidationRate, wantMean)
	}
	if rep.QC.DaysOverArtifactLimit != over {
		t.Errorf("days over limit %d, want %d", rep.QC.DaysOverArtifactLimit, over)
	}
}

func TestBuild_EmptyDatasets(t *testing.T) {
	rep := report.Build(variant.DefaultSeed, nil, nil, config.Default())

	if !math.IsNaN(rep.Metrics.MeanVAF) {
		t.Errorf("expected NaN mean VAF, got %v", rep.Metrics.MeanVAF)
	}
	if !math.IsNaN(rep.QC.MeanValidationRate) {
		t.Errorf("expected NaN QC means, got %v", rep.QC.MeanValidationRate)
	}
}

func TestRender_Sections(t *testing.T) {
	records, qcRecords := demoInputs()
	rep := report.Build(variant.DefaultSeed, records, qcRecords, config.Default())

	var buf bytes.Buffer
	if err := report.Render(&buf, rep, 5); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"ctDNA ANALYSIS REPORT",
		"TECHNICAL ANALYSIS",
		"VARIANT DETAIL",
		"QUALITY CONTROL MONITORING",
		"var_001",
		"2024-01-15",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}

func TestRender_EmptyDatasetShowsSentinel(t *testing.T) {
	rep := report.Build(variant.DefaultSeed, nil, nil, config.Default())

	var buf bytes.Buffer
	if err := report.Render(&buf, rep, 5); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "n/a") {
		t.Error("empty dataset did not render the n/a sentinel")
	}
}

func TestRenderCalibration(t *testing.T) {
	res := calibrate.Result{
		Replicates: 10,
		BaseSeed:   1,
		Distributions: []calibrate.Distribution{
			{Metric: "mean_vaf", Mean: 0.2, StdDev: 0.05, P50: 0.19, P90: 0.27, P95: 0.3},
		},
	}

	var buf bytes.Buffer
	if err := report.RenderCalibration(&buf, res); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "METRIC CALIBRATION") || !strings.Contains(out, "mean_vaf") {
		t.Errorf("calibration table incomplete:\n%s", out)
	}
}
