// Package scoring implements the multi-factor scoring engine: metric
// normalization, qualification gating, weighted aggregation and
// deterministic ranking. Everything here is pure computation over a
// request-scoped candidate batch; no I/O.
package scoring

import "math"

// Normalizer converts one raw metric into a dimensionless sub-score in
// [0,100]. Implementations must be pure and deterministic for a fixed
// batch. Three distinct strategies exist on purpose: tier-bucket scores
// are batch-independent, max-relative scores are only comparable within
// one batch, and recency scores invert the scale. Unifying them would
// change observable ranking.
type Normalizer interface {
	Normalize(value float64) float64
}

// tierBand maps values in [Min, nextBand.Min) to Base + Slope*(v-Min).
// Bands are ordered by Min descending; a zero Slope makes the band a
// flat step.
type tierBand struct {
	Min   float64
	Base  float64
	Slope float64
}

type tierBucketNormalizer struct {
	bands []tierBand
}

func (n *tierBucketNormalizer) Normalize(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	for _, b := range n.bands {
		if v >= b.Min {
			return clampScore(b.Base + b.Slope*(v-b.Min))
		}
	}
	return 0
}

// NewAudienceSizeNormalizer scores follower counts into seven discrete
// bands, from 100 at one million followers down to 40 below one thousand.
func NewAudienceSizeNormalizer() Normalizer {
	return &tierBucketNormalizer{bands: []tierBand{
		{Min: 1_000_000, Base: 100},
		{Min: 500_000, Base: 90},
		{Min: 100_000, Base: 85},
		{Min: 50_000, Base: 80},
		{Min: 10_000, Base: 70},
		{Min: 1_000, Base: 55},
		{Min: 0, Base: 40},
	}}
}

// NewEngagementRateNormalizer scores an engagement-rate percentage with
// linear interpolation inside each band: 6%+ pins at 100, under 1% falls
// off toward 0.
func NewEngagementRateNormalizer() Normalizer {
	return &tierBucketNormalizer{bands: []tierBand{
		{Min: 6, Base: 100},
		{Min: 5, Base: 85, Slope: 15},
		{Min: 4, Base: 70, Slope: 15},
		{Min: 3, Base: 55, Slope: 15},
		{Min: 2, Base: 40, Slope: 15},
		{Min: 1, Base: 20, Slope: 20},
		{Min: 0, Base: 0, Slope: 20},
	}}
}

type maxRelativeNormalizer struct {
	max float64
}

// NewMaxRelativeNormalizer scales values against the maximum observed in
// the current batch. The divisor is floored at 1, so a batch where every
// candidate has 0 scores everyone 0 instead of dividing by zero.
func NewMaxRelativeNormalizer(batchMax float64) Normalizer {
	return &maxRelativeNormalizer{max: math.Max(batchMax, 1)}
}

func (n *maxRelativeNormalizer) Normalize(v float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return clampScore(v / n.max * 100)
}

type recencyNormalizer struct {
	max float64
}

// NewRecencyNormalizer inverts a days-since metric against the batch
// maximum: the newest candidate scores near 100, the stalest near 0.
func NewRecencyNormalizer(batchMax float64) Normalizer {
	return &recencyNormalizer{max: math.Max(batchMax, 1)}
}

// NewActivityRecencyNormalizer caps the lookback at windowDays regardless
// of the batch, so anything idle past the window scores 0.
func NewActivityRecencyNormalizer(windowDays int) Normalizer {
	if windowDays < 1 {
		windowDays = 1
	}
	return &recencyNormalizer{max: float64(windowDays)}
}

func (n *recencyNormalizer) Normalize(daysSince float64) float64 {
	if daysSince < 0 || math.IsNaN(daysSince) || math.IsInf(daysSince, 0) {
		daysSince = 0
	}
	if daysSince > n.max {
		daysSince = n.max
	}
	return clampScore(100 - daysSince/n.max*100)
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// round1 and round2 are the two rounding contracts: sub-scores carry one
// decimal, composites two.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// batchMax returns the maximum of vals, 0 for an empty batch.
func batchMax(vals []float64) float64 {
	max := 0.0
	for _, v := range vals {
		if v > max {
			max = v
		}
	}
	return max
}
