// Package derive holds the pure reductions computed over a variant dataset.
// Every function is a one-pass, side-effect-free fold; none of them mutate
// the records they read.
package derive

import (
	"math"

	"github.com/liquidbio/ctdna-lab/internal/variant"
)

// Fixed per-call classification rule. These are deliberately NOT the
// user-adjustable detection thresholds: the original platform classified
// calls with hardcoded constants regardless of the sidebar sliders, and that
// behavior is preserved. config.ClassifyWithDetection opts into the
// user-set thresholds instead.
const (
	CallSNThreshold       = 3.0
	CallArtifactThreshold = 0.3
)

// Thresholds are the user-adjustable detection settings.
type Thresholds struct {
	// VAF is the minimum VAF percent for a variant to be reportable.
	VAF float64 `json:"vaf_percent"`
	// SignalToNoise is the detection S/N cutoff.
	SignalToNoise float64 `json:"signal_to_noise"`
}

// DefaultThresholds mirrors the dashboard slider defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{VAF: 0.05, SignalToNoise: 3.0}
}

// CountHighConfidence counts records with SignalToNoise strictly above
// snThreshold. For fixed records the count is monotonically non-increasing
// in the threshold.
func CountHighConfidence(records []variant.Record, snThreshold float64) int {
	n := 0
	for _, r := range records {
		if r.SignalToNoise > snThreshold {
			n++
		}
	}
	return n
}

// CountActionable counts clinically actionable records.
func CountActionable(records []variant.Record) int {
	n := 0
	for _, r := range records {
		if r.ClinicalActionable {
			n++
		}
	}
	return n
}

// CountReportable counts records whose VAF percent meets the detection
// threshold.
func CountReportable(records []variant.Record, vafThreshold float64) int {
	n := 0
	for _, r := range records {
		if r.VAFPercent >= vafThreshold {
			n++
		}
	}
	return n
}

// MeanVAF returns the arithmetic mean of VAFPercent, or NaN for an empty
// dataset. NaN rather than zero: a zero mean is a legitimate value and would
// mask the empty case.
func MeanVAF(records []variant.Record) float64 {
	if len(records) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, r := range records {
		sum += r.VAFPercent
	}
	return sum / float64(len(records))
}

// HighConfidenceCall applies the fixed per-call rule: S/N strictly above
// CallSNThreshold and artifact probability strictly below
// CallArtifactThreshold. Boundary values fail on both sides.
func HighConfidenceCall(r variant.Record) bool {
	return r.SignalToNoise > CallSNThreshold && r.ArtifactProb < CallArtifactThreshold
}

// Metrics is the full set of panel values derived from one dataset.
// HighConfidence uses the adjustable detection threshold; FixedRuleCalls uses
// the hardcoded call rule, so the two can disagree and the report shows both.
type Metrics struct {
	Total             int     `json:"total"`
	HighConfidence    int     `json:"high_confidence"`
	HighConfidencePct float64 `json:"high_confidence_pct"`
	Actionable        int     `json:"actionable"`
	ActionablePct     float64 `json:"actionable_pct"`
	MeanVAF           float64 `json:"mean_vaf"`
	FixedRuleCalls    int     `json:"fixed_rule_calls"`
	Reportable        int     `json:"reportable"`
}

// Summary computes Metrics in one pass over the dataset.
func Summary(records []variant.Record, t Thresholds) Metrics {
	m := Metrics{
		Total:          len(records),
		HighConfidence: CountHighConfidence(records, t.SignalToNoise),
		Actionable:     CountActionable(records),
		MeanVAF:        MeanVAF(records),
		Reportable:     CountReportable(records, t.VAF),
	}
	for _, r := range records {
		if HighConfidenceCall(r) {
			m.FixedRuleCalls++
		}
	}
	if m.Total > 0 {
		m.HighConfidencePct = float64(m.HighConfidence) / float64(m.Total)
		m.ActionablePct = float64(m.Actionable) / float64(m.Total)
	}
	return m
}
