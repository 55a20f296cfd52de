package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/liquidbio/ctdna-lab/internal/calibrate"
	"github.com/liquidbio/ctdna-lab/internal/derive"
	"github.com/liquidbio/ctdna-lab/internal/qc"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	blue   = color.New(color.FgBlue)
)

const sectionRule = "═══════════════════════════════════════════════════════════"

// Render writes the report as colored terminal tables.
func Render(w io.Writer, r Report, showCount int) error {
	printHeader(w, "ctDNA ANALYSIS REPORT")
	colorFprintf(blue, w, "Seed %d | generated %s\n", r.Seed, r.GeneratedAt.Format(time.RFC3339))
	colorFprintf(blue, w, "Detection thresholds: VAF >= %.2f%% | S/N > %.1f\n",
		r.Thresholds.VAF, r.Thresholds.SignalToNoise)
	if r.ClassifyWithDetect {
		colorFprintLn(yellow, w, "Call labels use the detection thresholds (classify_with_detection_thresholds: true)")
	} else {
		colorFprintf(yellow, w, "Call labels use the fixed rule (S/N > %.1f, artifact < %.1f), not the detection thresholds\n",
			derive.CallSNThreshold, derive.CallArtifactThreshold)
	}

	if err := renderMetrics(w, r); err != nil {
		return err
	}
	if err := renderVariants(w, r, showCount); err != nil {
		return err
	}
	if err := renderQC(w, r.QC); err != nil {
		return err
	}

	fmt.Fprintln(w)
	colorFprintf(green, w, "✅ %d variants analysed across %d QC days\n", r.Metrics.Total, len(r.QC.Records))
	return nil
}

func renderMetrics(w io.Writer, r Report) error {
	printSectionHeader(w, "🔬 TECHNICAL ANALYSIS",
		"Headline metrics over the generated dataset")

	m := r.Metrics
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value", "Share")

	_ = table.Append("High Confidence (S/N > detection cutoff)", strconv.Itoa(m.HighConfidence), formatPct(m.HighConfidencePct))
	_ = table.Append("High Confidence (fixed call rule)", strconv.Itoa(m.FixedRuleCalls), "")
	_ = table.Append("Clinically Actionable", strconv.Itoa(m.Actionable), formatPct(m.ActionablePct))
	_ = table.Append("Reportable (VAF >= threshold)", strconv.Itoa(m.Reportable), "")
	_ = table.Append("Mean VAF", formatVAF(m.MeanVAF), "")

	return table.Render()
}

func renderVariants(w io.Writer, r Report, showCount int) error {
	if showCount < 1 {
		showCount = 1
	}
	if showCount > len(r.Variants) {
		showCount = len(r.Variants)
	}

	printSectionHeader(w, "🧬 VARIANT DETAIL",
		fmt.Sprintf("First %d of %d variants", showCount, len(r.Variants)))

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Gene", "VAF %", "Depth", "Alt", "S/N", "Artifact", "Cancer", "Status", "Call")

	for _, v := range r.Variants[:showCount] {
		call := "⚠ validate"
		if v.HighConfidenceCall {
			call = "✅ high conf"
		}
		_ = table.Append(
			v.VariantID,
			v.Gene,
			fmt.Sprintf("%.3f", v.VAFPercent),
			formatThousands(v.Depth),
			strconv.Itoa(v.AltReads),
			fmt.Sprintf("%.1f", v.SignalToNoise),
			fmt.Sprintf("%.0f%%", v.ArtifactProb*100),
			v.CancerType,
			string(v.ValidationStatus),
			call,
		)
	}
	return table.Render()
}

func renderQC(w io.Writer, s QCSummary) error {
	printSectionHeader(w, "📊 QUALITY CONTROL MONITORING",
		fmt.Sprintf("%d-day window | mean depth %s | validation %s | artifact %s",
			len(s.Records),
			formatVAF(s.MeanDepth),
			formatPct(s.MeanValidationRate),
			formatPct(s.MeanArtifactRate)))

	table := tablewriter.NewWriter(w)
	table.Header("Date", "Samples", "Avg Depth", "Validation", "Artifact")

	for _, r := range s.Records {
		artifact := fmt.Sprintf("%.1f%%", r.ArtifactRate*100)
		if r.ArtifactRate > qc.ArtifactRateLimit {
			artifact += " ⚠"
		}
		_ = table.Append(
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.SamplesProcessed),
			fmt.Sprintf("%.0f", r.AvgDepth),
			fmt.Sprintf("%.1f%%", r.ValidationRate*100),
			artifact,
		)
	}
	if err := table.Render(); err != nil {
		return err
	}

	if s.DaysOverArtifactLimit > 0 {
		colorFprintf(red, w, "⚠ %d day(s) above the artifact-rate limit\n", s.DaysOverArtifactLimit)
	}
	return nil
}

// RenderCalibration writes the replicate-study summary table.
func RenderCalibration(w io.Writer, res calibrate.Result) error {
	printSectionHeader(w, "📈 METRIC CALIBRATION",
		fmt.Sprintf("%d replicates | base seed %d | %s",
			res.Replicates, res.BaseSeed, res.Elapsed.Round(time.Millisecond)))

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Mean", "Std Dev", "P50", "P90", "P95")

	for _, d := range res.Distributions {
		_ = table.Append(
			d.Metric,
			fmt.Sprintf("%.3f", d.Mean),
			fmt.Sprintf("%.3f", d.StdDev),
			fmt.Sprintf("%.3f", d.P50),
			fmt.Sprintf("%.3f", d.P90),
			fmt.Sprintf("%.3f", d.P95),
		)
	}
	return table.Render()
}

func printHeader(w io.Writer, name string) {
	colorFprintLn(bold, w, "╔════════════════════════════════════════════════════════════╗")
	colorFprintf(bold, w, "║       %-52s ║\n", name)
	colorFprintLn(bold, w, "╚════════════════════════════════════════════════════════════╝")
}

func printSectionHeader(w io.Writer, title string, descriptions ...string) {
	fmt.Fprintln(w)
	colorFprintLn(bold, w, sectionRule)
	colorFprintLn(bold, w, title)
	colorFprintLn(bold, w, sectionRule)
	for _, desc := range descriptions {
		fmt.Fprintln(w, desc)
	}
	fmt.Fprintln(w)
}

func colorFprintLn(c *color.Color, w io.Writer, a ...any) {
	_, _ = c.Fprintln(w, a...)
}

func colorFprintf(c *color.Color, w io.Writer, format string, a ...any) {
	_, _ = c.Fprintf(w, format, a...)
}

// formatVAF prints a float or "n/a" for the NaN sentinel an empty dataset
// produces.
func formatVAF(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func formatPct(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", v*100)
}

// formatThousands formats an integer with comma separators.
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	var result strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(c)
	}
	return result.String()
}
