// Package normalize rescales raw score lists so that heterogeneous scoring
// systems (unbounded BM25 vs bounded cosine) become comparable before fusion.
package normalize

import "math"

// Strategy selects a score normalization method.
type Strategy string

// Supported normalization strategies.
const (
	// MinMax maps scores onto [0,1]; all-equal inputs map to 1.0.
	MinMax Strategy = "min_max"
	// ZScore centers scores by mean and population stddev; a degenerate
	// stddev maps every score to 0.0.
	ZScore Strategy = "z_score"
	// None is the identity transform.
	None Strategy = "none"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == MinMax || s == ZScore || s == None
}

const epsilon = 1e-10

// Apply rescales scores using the given strategy. The output list is aligned
// with the input order; empty input yields empty output. Unknown strategies
// behave as MinMax.
func Apply(scores []float64, strategy Strategy) []float64 {
	if len(scores) == 0 {
		return nil
	}

	switch strategy {
	case ZScore:
		return zScore(scores)
	case None:
		out := make([]float64, len(scores))
		copy(out, scores)
		return out
	default:
		return minMax(scores)
	}
}

func minMax(scores []float64) []float64 {
	minV, maxV := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < minV {
			minV = s
		}
		if s > maxV {
			maxV = s
		}
	}

	out := make([]float64, len(scores))
	spread := maxV - minV
	if spread < epsilon {
		// All scores equal: every candidate is equally best.
		for i := range out {
			out[i] = 1.0
		}
		return out
	}
	for i, s := range scores {
		out[i] = (s - minV) / spread
	}
	return out
}

func zScore(scores []float64) []float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	var variance float64
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(len(scores)))

	out := make([]float64, len(scores))
	if stddev < epsilon {
		return out
	}
	for i, s := range scores {
		out[i] = (s - mean) / stddev
	}
	return out
}
