// Package variant generates the synthetic ctDNA variant dataset the demo
// analyses are computed over. The dataset is small by design: eight records,
// reproducible under a fixed seed, with VAFs drawn from a log-normal so the
// low-fraction tail looks like real liquid-biopsy data.
package variant

// Genes is the fixed panel the demo assay covers.
var Genes = []string{"EGFR", "KRAS", "TP53", "PIK3CA", "BRAF"}

// CancerTypes is the fixed set of indications a record can carry.
var CancerTypes = []string{"NSCLC", "CRC", "Breast", "Pancreatic"}

// ValidationStatus is the orthogonal-assay confirmation state of a call.
type ValidationStatus string

const (
	StatusConfirmed ValidationStatus = "Confirmed"
	StatusPending   ValidationStatus = "Pending"
	StatusFailed    ValidationStatus = "Failed"
)

// Record is one synthetic variant call.
//
// AltReads is always derived from Depth and VAFPercent, never drawn
// independently, and VAFPercent is floored at 0.01.
type Record struct {
	Gene               string           `json:"gene"`
	VariantID          string           `json:"variant_id"`
	VAFPercent         float64          `json:"vaf_percent"`
	Depth              int              `json:"depth"`
	AltReads           int              `json:"alt_reads"`
	CancerType         string           `json:"cancer_type"`
	SignalToNoise      float64          `json:"signal_to_noise"`
	CTDNAFraction      float64          `json:"ctdna_fraction"`
	ArtifactProb       float64          `json:"artifact_prob"`
	ClinicalActionable bool             `json:"clinical_actionable"`
	ValidationStatus   ValidationStatus `json:"validation_status"`
}
