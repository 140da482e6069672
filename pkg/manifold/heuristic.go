package manifold

import "math"

// Classification thresholds on the shape ratio. Carried over from the
// observed behavior of the original engine; see DESIGN.md for the
// calibration note.
const (
	hyperbolicThreshold = 0.5
	sphericalThreshold  = 0.2
)

// shapeStatistics holds the dispersion statistics of one sample.
type shapeStatistics struct {
	// ratio is std/mean of the centroid distances, clamped to [0,1].
	ratio float64

	// epsilon is the coefficient of variation of nearest-neighbour
	// distances, clamped to [0,1].
	epsilon float64
}

// computeShapeStatistics derives the heuristic dispersion statistics from
// the sampled vectors. len(vectors) >= 4 is the caller's responsibility.
func computeShapeStatistics(vectors [][]float64) shapeStatistics {
	center := centroid(vectors)

	dists := make([]float64, len(vectors))
	for i, v := range vectors {
		dists[i] = euclidean(v, center)
	}
	mean, std := meanStd(dists)

	ratio := 0.0
	if mean > 0 {
		ratio = clamp01(std / mean)
	}

	nn := nearestNeighborDistances(vectors)
	nnMean, nnStd := meanStd(nn)
	epsilon := 0.0
	if nnMean > 0 {
		epsilon = clamp01(nnStd / nnMean)
	}

	return shapeStatistics{ratio: ratio, epsilon: epsilon}
}

// classify maps a shape ratio onto a manifold class. The thresholds apply
// to the heuristic ratio in both modes; the exact delta only refines the
// curvature magnitude, not the class.
func classify(ratio float64) Classification {
	switch {
	case ratio > hyperbolicThreshold:
		return Hyperbolic
	case ratio < sphericalThreshold:
		return Spherical
	default:
		return Euclidean
	}
}

func centroid(vectors [][]float64) []float64 {
	dim := len(vectors[0])
	center := make([]float64, dim)
	for _, v := range vectors {
		for j := 0; j < dim && j < len(v); j++ {
			center[j] += v[j]
		}
	}
	for j := range center {
		center[j] /= float64(len(vectors))
	}
	return center
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))
	return mean, math.Sqrt(variance)
}

func nearestNeighborDistances(vectors [][]float64) []float64 {
	nn := make([]float64, len(vectors))
	for i := range vectors {
		best := math.Inf(1)
		for j := range vectors {
			if i == j {
				continue
			}
			if d := euclidean(vectors[i], vectors[j]); d < best {
				best = d
			}
		}
		nn[i] = best
	}
	return nn
}

func clamp01(x float64) float64 {
	return clamp(x, 0, 1)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
