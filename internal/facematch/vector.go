package facematch

import (
	"fmt"
	"math"

	facematcherrors "face-logbook/internal/facematch/errors"
)

// Normalize returns a unit-L2 copy of v. Accumulation is done in float64.
func Normalize(v []float32) ([]float32, error) {
	if len(v) == 0 {
		return nil, facematcherrors.ErrEmptyEmbedding
	}
	var sum float64
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, facematcherrors.ErrNonFiniteEmbedding
		}
		sum += f * f
	}
	if sum == 0 {
		return nil, facematcherrors.ErrZeroEmbedding
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out, nil
}

// Dot is the cosine similarity of two unit vectors, clamped to [-1, 1] to
// absorb float error.
func Dot(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: query has %d dims, stored has %d", facematcherrors.ErrDimensionMismatch, len(a), len(b))
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	if dot > 1 {
		dot = 1
	}
	if dot < -1 {
		dot = -1
	}
	return dot, nil
}
