// Package qc generates the synthetic daily quality-control series shown in
// the monitoring panels: samples processed, mean depth, validation rate, and
// artifact rate over a fixed eleven-day window.
package qc

import (
	"math/rand"
	"time"
)

// WindowDays is the length of the fixed QC window.
const WindowDays = 11

// ArtifactRateLimit is the monitoring threshold drawn on the artifact-rate
// trend; days above it count as excursions.
const ArtifactRateLimit = 0.05

// windowStart anchors the fixed window 2024-01-15 .. 2024-01-25 inclusive.
var windowStart = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

// Record is one day of QC metrics. AvgDepth is intentionally unclamped.
type Record struct {
	Date             time.Time `json:"date"`
	SamplesProcessed int       `json:"samples_processed"`
	AvgDepth         float64   `json:"avg_depth"`
	ValidationRate   float64   `json:"validation_rate"`
	ArtifactRate     float64   `json:"artifact_rate"`
}

// Generator produces the QC series. Unlike the variant generator it is
// time-seeded by default, so output varies per invocation; WithSeed pins it
// for tests and calibration.
type Generator struct {
	seed   int64
	seeded bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the series reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.seeded = true
	}
}

// NewGenerator returns a QC generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns exactly WindowDays records with contiguous daily dates
// over the fixed window. It cannot fail.
func (g *Generator) Generate() []Record {
	seed := g.seed
	if !g.seeded {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	records := make([]Record, 0, WindowDays)
	for day := range WindowDays {
		records = append(records, Record{
			Date:             windowStart.AddDate(0, 0, day),
			SamplesProcessed: rng.Intn(80-40) + 40,
			AvgDepth:         rng.NormFloat64()*1000 + 8000,
			ValidationRate:   0.85 + rng.Float64()*(0.98-0.85),
			ArtifactRate:     0.02 + rng.Float64()*(0.08-0.02),
		})
	}
	return records
}

// WindowStart returns the first day of the fixed window.
func WindowStart() time.Time {
	return windowStart
}
