// Package sampler selects a bounded, deterministic subset of a document's
// embeddings for manifold analysis. Determinism matters: the same embedding
// set and limit must always yield the same sample, so classification results
// are reproducible across requests and in tests.
package sampler

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when fewer than MinVectors usable
// (finite, non-NaN) vectors remain after filtering. Callers are expected
// to degrade to an indeterminate result rather than fail the request.
var ErrInsufficientData = errors.New("sampler: fewer than 4 usable vectors")

// MinVectors is the minimum number of usable vectors required for any
// curvature statistic. Four points are the smallest configuration on
// which the four-point condition is defined.
const MinVectors = 4

// Sample is a deterministic, order-preserving subset of an embedding set.
type Sample struct {
	// Vectors are the selected embeddings, in original order.
	Vectors [][]float64

	// DroppedCount is the number of input vectors discarded for containing
	// NaN or Inf components. Recorded as a diagnostic; dropped vectors do
	// not fail the computation as long as enough usable ones remain.
	DroppedCount int
}

// Select filters out non-finite vectors and reduces the remainder to at
// most limit vectors by stride sampling from the head. Order is preserved
// and the same input always produces the same output.
func Select(vectors [][]float64, limit int) (Sample, error) {
	usable := make([][]float64, 0, len(vectors))
	dropped := 0
	for _, v := range vectors {
		if isFinite(v) {
			usable = append(usable, v)
		} else {
			dropped++
		}
	}

	if len(usable) < MinVectors {
		return Sample{DroppedCount: dropped}, ErrInsufficientData
	}

	if limit <= 0 || len(usable) <= limit {
		return Sample{Vectors: usable, DroppedCount: dropped}, nil
	}

	// Stride over the usable vectors so the sample spans the whole set
	// instead of truncating to the head.
	stride := len(usable) / limit
	if stride < 1 {
		stride = 1
	}
	selected := make([][]float64, 0, limit)
	for i := 0; i < len(usable) && len(selected) < limit; i += stride {
		selected = append(selected, usable[i])
	}
	return Sample{Vectors: selected, DroppedCount: dropped}, nil
}

func isFinite(v []float64) bool {
	if len(v) == 0 {
		return false
	}
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
