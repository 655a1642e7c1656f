// Package vectormath provides pure similarity and distance functions over
// equal-length float vectors. All functions are stateless and reentrant.
package vectormath

import (
	"fmt"
	"math"

	"github.com/quillsearch/hyra/internal/domain"
)

// Cosine returns the cosine similarity dot(a,b) / (|a|*|b|).
// Returns 0 when either vector has zero magnitude (defined edge case, not an error).
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, dimError(len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Dot returns the dot product of a and b.
func Dot(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, dimError(len(a), len(b))
	}

	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum, nil
}

// Euclidean returns the L2 distance between a and b.
func Euclidean(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, dimError(len(a), len(b))
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

func dimError(a, b int) error {
	return fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, a, b)
}
