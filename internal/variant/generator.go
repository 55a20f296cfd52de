package variant

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	// DefaultSeed makes the demo dataset reproducible across sessions.
	DefaultSeed int64 = 42

	// DatasetSize is the number of records per generated dataset.
	DatasetSize = 8

	// MinVAFPercent is the floor applied to the log-normal VAF draw.
	MinVAFPercent = 0.01

	vafLocation = -2.5
	vafScale    = 1.2

	minDepth = 5000
	maxDepth = 15000

	actionableProb = 0.6

	confirmedProb = 0.7
	pendingProb   = 0.2
)

// Generator produces the synthetic variant dataset. Generation is
// deterministic for a given seed: every call to Generate starts from a fresh
// PRNG state, so repeated calls return identical datasets. It cannot fail.
type Generator struct {
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed overrides the default seed. Calibration uses this to draw
// independent replicate datasets.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator returns a generator seeded with DefaultSeed unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: DefaultSeed}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Seed reports the seed the generator draws from.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate returns the DatasetSize synthetic records. The per-record draw
// order is fixed (gene, VAF, depth, cancer type, S/N, ctDNA fraction,
// artifact probability, actionability, validation status); changing it would
// change every downstream value under the same seed.
func (g *Generator) Generate() []Record {
	rng := rand.New(rand.NewSource(g.seed))

	records := make([]Record, 0, DatasetSize)
	for i := range DatasetSize {
		gene := Genes[rng.Intn(len(Genes))]
		vaf := math.Exp(rng.NormFloat64()*vafScale + vafLocation)
		vafPercent := math.Max(MinVAFPercent, vaf)
		depth := rng.Intn(maxDepth-minDepth) + minDepth

		records = append(records, Record{
			Gene:               gene,
			VariantID:          fmt.Sprintf("var_%03d", i+1),
			VAFPercent:         vafPercent,
			Depth:              depth,
			AltReads:           int(float64(depth) * vafPercent / 100),
			CancerType:         CancerTypes[rng.Intn(len(CancerTypes))],
			SignalToNoise:      uniform(rng, 1.5, 8.0),
			CTDNAFraction:      uniform(rng, 0.001, 0.2),
			ArtifactProb:       uniform(rng, 0.05, 0.6),
			ClinicalActionable: rng.Float64() < actionableProb,
			ValidationStatus:   drawStatus(rng),
		})
	}
	return records
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func drawStatus(rng *rand.Rand) ValidationStatus {
	u := rng.Float64()
	switch {
	case u < confirmedProb:
		return StatusConfirmed
	case u < confirmedProb+pendingProb:
		return StatusPending
	default:
		return StatusFailed
	}
}
