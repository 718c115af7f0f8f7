// Package statistics summarizes a presentation's training-score history:
// descriptive stats plus a bootstrap test of whether recent sessions improved
// on earlier ones.
package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// BootstrapIterations is the number of resamples per confidence interval.
const BootstrapIterations = 10000

// ConfidenceInterval is a percentile bootstrap interval over a sample mean.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	Resamples       int     `json:"resamples"`
}

// Contains reports whether v lies within the interval.
func (ci ConfidenceInterval) Contains(v float64) bool {
	return ci.Lower <= v && v <= ci.Upper
}

// TrendSummary describes one presentation's score history.
type TrendSummary struct {
	Sessions int     `json:"sessions"`
	Mean     float64 `json:"mean"`
	Best     float64 `json:"best"`
	Latest   float64 `json:"latest"`

	// Improvement is the bootstrap interval over (recent half mean -
	// earlier half mean). Zero-valued when fewer than four sessions exist.
	Improvement ConfidenceInterval `json:"improvement"`

	// Significant is true when the improvement interval excludes zero.
	Significant bool `json:"significant"`
}

// Summarize computes the trend summary for scores in chronological order.
// The improvement test needs at least four sessions; below that only the
// descriptive fields are populated.
func Summarize(scores []float64, confidenceLevel float64, seed int64) TrendSummary {
	s := TrendSummary{
		Sessions: len(scores),
		Mean:     mean(scores),
	}
	if len(scores) == 0 {
		return s
	}

	s.Latest = scores[len(scores)-1]
	s.Best = scores[0]
	for _, v := range scores[1:] {
		if v > s.Best {
			s.Best = v
		}
	}

	if len(scores) >= 4 {
		mid := len(scores) / 2
		s.Improvement = BootstrapDiffCI(scores[mid:], scores[:mid], confidenceLevel, seed)
		s.Significant = !s.Improvement.Contains(0)
	}
	return s
}

// BootstrapDiffCI computes a percentile bootstrap interval over the
// difference in means between two samples (a minus b). A negative seed uses
// a non-deterministic source.
func BootstrapDiffCI(a, b []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	diff := mean(a) - mean(b)
	if len(a) < 2 || len(b) < 2 {
		return ConfidenceInterval{
			Lower:           diff,
			Upper:           diff,
			Mean:            diff,
			ConfidenceLevel: confidenceLevel,
		}
	}

	rng := newRNG(seed)
	diffs := make([]float64, BootstrapIterations)
	for i := range diffs {
		diffs[i] = resampleMean(rng, a) - resampleMean(rng, b)
	}
	sort.Float64s(diffs)

	lo, hi := percentileBounds(confidenceLevel, len(diffs))
	return ConfidenceInterval{
		Lower:           diffs[lo],
		Upper:           diffs[hi],
		Mean:            diff,
		ConfidenceLevel: confidenceLevel,
		Resamples:       BootstrapIterations,
	}
}

// BootstrapCI computes a percentile bootstrap interval over a single
// sample's mean. Fewer than two values yield a degenerate interval.
func BootstrapCI(scores []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	m := mean(scores)
	if len(scores) < 2 {
		return ConfidenceInterval{
			Lower:           m,
			Upper:           m,
			Mean:            m,
			ConfidenceLevel: confidenceLevel,
		}
	}

	rng := newRNG(seed)
	means := make([]float64, BootstrapIterations)
	for i := range means {
		means[i] = resampleMean(rng, scores)
	}
	sort.Float64s(means)

	lo, hi := percentileBounds(confidenceLevel, len(means))
	return ConfidenceInterval{
		Lower:           means[lo],
		Upper:           means[hi],
		Mean:            m,
		ConfidenceLevel: confidenceLevel,
		Resamples:       BootstrapIterations,
	}
}

func newRNG(seed int64) *rand.Rand {
	if seed < 0 {
		seed = rand.Int63()
	}
	return rand.New(rand.NewSource(seed))
}

func resampleMean(rng *rand.Rand, values []float64) float64 {
	sum := 0.0
	for range values {
		sum += values[rng.Intn(len(values))]
	}
	return sum / float64(len(values))
}

func percentileBounds(confidenceLevel float64, n int) (lo, hi int) {
	alpha := 1.0 - confidenceLevel
	lo = int(math.Floor(alpha / 2.0 * float64(n)))
	hi = int(math.Floor((1.0 - alpha/2.0) * float64(n)))
	if hi >= n {
		hi = n - 1
	}
	return lo, hi
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
