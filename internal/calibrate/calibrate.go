// Package calibrate estimates the sampling distribution of the derived
// metrics by generating many independent replicate datasets and summarizing
// the per-replicate values. It backs the platform's "statistical validation"
// panel: a feel for how much the headline numbers move when the seed does.
package calibrate

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/liquidbio/ctdna-lab/internal/derive"
	"github.com/liquidbio/ctdna-lab/internal/variant"
)

// DefaultReplicates is used when no replicate count is configured.
const DefaultReplicates = 200

type runConfig struct {
	replicates int
	workers    int
	baseSeed   int64
	thresholds derive.Thresholds
	limiter    *rate.Limiter
	bar        *progressbar.ProgressBar
}

// Option configures a calibration run.
type Option func(*runConfig)

// WithReplicates sets the number of replicate datasets.
func WithReplicates(n int) Option {
	return func(cfg *runConfig) {
		if n > 0 {
			cfg.replicates = n
		}
	}
}

// WithWorkers bounds the number of concurrent replicate generations.
// If not specified, replicates run sequentially.
func WithWorkers(n int) Option {
	return func(cfg *runConfig) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// WithBaseSeed pins replicate i to seed baseSeed+i, making the whole run
// reproducible. If not specified, seeds derive from the wall clock.
func WithBaseSeed(seed int64) Option {
	return func(cfg *runConfig) {
		cfg.baseSeed = seed
	}
}

// WithThresholds sets the detection thresholds applied to each replicate.
func WithThresholds(t derive.Thresholds) Option {
	return func(cfg *runConfig) {
		cfg.thresholds = t
	}
}

// WithRateLimit throttles replicate generation. perSecond specifies the
// maximum replicates per second, burst the largest uninterrupted batch.
// If not specified, no throttling is applied.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(cfg *runConfig) {
		if perSecond > 0 && burst > 0 {
			cfg.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithProgress attaches a progress bar advanced once per replicate.
func WithProgress(bar *progressbar.ProgressBar) Option {
	return func(cfg *runConfig) {
		cfg.bar = bar
	}
}

// Distribution summarizes one metric across all replicates.
type Distribution struct {
	Metric string  `json:"metric"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
}

// Result is the outcome of a calibration run.
type Result struct {
	Replicates    int            `json:"replicates"`
	BaseSeed      int64          `json:"base_seed"`
	Elapsed       time.Duration  `json:"elapsed_ns"`
	Distributions []Distribution `json:"distributions"`
}

// Run generates the replicates and summarizes the derived metrics. The only
// error sources are context cancellation and limiter failure; generation
// itself cannot fail.
func Run(ctx context.Context, opts ...Option) (Result, error) {
	cfg := runConfig{
		replicates: DefaultReplicates,
		workers:    1,
		thresholds: derive.DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	baseSeed := cfg.baseSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	n := cfg.replicates
	meanVAF := make([]float64, n)
	highConf := make([]float64, n)
	actionable := make([]float64, n)
	reportable := make([]float64, n)
	fixedCalls := make([]float64, n)

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)

	for i := range n {
		g.Go(func() error {
			if cfg.limiter != nil {
				if err := cfg.limiter.Wait(ctx); err != nil {
					return fmt.Errorf("replicate %d throttled out: %w", i, err)
				}
			} else if err := ctx.Err(); err != nil {
				return err
			}

			gen := variant.NewGenerator(variant.WithSeed(baseSeed + int64(i)))
			m := derive.Summary(gen.Generate(), cfg.thresholds)

			meanVAF[i] = m.MeanVAF
			highConf[i] = float64(m.HighConfidence)
			actionable[i] = float64(m.Actionable)
			reportable[i] = float64(m.Reportable)
			fixedCalls[i] = float64(m.FixedRuleCalls)

			if cfg.bar != nil {
				_ = cfg.bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return Result{
		Replicates: n,
		BaseSeed:   baseSeed,
		Elapsed:    time.Since(start),
		Distributions: []Distribution{
			summarize("mean_vaf", meanVAF),
			summarize("high_confidence", highConf),
			summarize("actionable", actionable),
			summarize("reportable", reportable),
			summarize("fixed_rule_calls", fixedCalls),
		},
	}, nil
}

func summarize(metric string, values []float64) Distribution {
	d := Distribution{Metric: metric}
	if len(values) == 0 {
		return d
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	d.Mean = sum / float64(len(values))

	varianceSum := 0.0
	for _, v := range values {
		diff := v - d.Mean
		varianceSum += diff * diff
	}
	d.StdDev = math.Sqrt(varianceSum / float64(len(values)))

	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	d.P50 = percentile(sorted, 50)
	d.P90 = percentile(sorted, 90)
	d.P95 = percentile(sorted, 95)
	return d
}

// percentile linearly interpolates over a sorted sample.
func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := float64(p) / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	weight := pos - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
