package manifold

import (
	"fmt"
	"time"
)

// Classification names the inferred shape of a document's embedding cloud.
type Classification string

const (
	// Hyperbolic marks tree-like, hierarchical structure (negative curvature).
	Hyperbolic Classification = "hyperbolic"

	// Spherical marks clustered or cyclic structure (positive curvature).
	Spherical Classification = "spherical"

	// Euclidean marks unstructured, flat embeddings (near-zero curvature).
	Euclidean Classification = "euclidean"

	// Indeterminate is emitted only when fewer than four usable vectors
	// exist, or when derivation produced a non-finite value.
	Indeterminate Classification = "indeterminate"
)

// Mode selects the analysis path. It is parsed once at the API boundary;
// everything downstream dispatches on the value, never on payload shape.
type Mode string

const (
	// ModeHeuristic uses the O(N) centroid-dispersion statistic.
	ModeHeuristic Mode = "heuristic"

	// ModeExact additionally computes four-point Gromov hyperbolicity on a
	// reduced sample, subject to an iteration budget.
	ModeExact Mode = "exact"
)

// ParseMode validates a caller-supplied mode string. The empty string
// defaults to heuristic.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeHeuristic, nil
	case ModeHeuristic, ModeExact:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Metrics is the result of one manifold analysis.
//
// Invariants, enforced by the analyzer and checked in tests:
//   - ShapeRatio, Delta, Epsilon ∈ [0,1]; CurvatureK ∈ [-5,5]; all finite.
//   - Hyperbolic ⇒ CurvatureK < -1; Spherical ⇒ CurvatureK > 1;
//     Euclidean ⇒ CurvatureK ∈ [-1,1].
//   - Indeterminate carries CurvatureK = 0 and Epsilon = 0.
type Metrics struct {
	DocumentID string `json:"documentId"`

	// ShapeRatio is the coefficient of variation of the sampled
	// centroid distances, clamped to [0,1].
	ShapeRatio float64 `json:"shapeRatio"`

	// Delta is the hyperbolicity proxy: equal to ShapeRatio on the
	// heuristic path, or the normalized four-point value on the exact
	// path. Higher means more tree-like.
	Delta float64 `json:"delta"`

	// CurvatureK is the signed curvature driving surface selection.
	CurvatureK float64 `json:"curvatureK"`

	// Epsilon is the noise/temperature scalar modulating animation and
	// spectral damping.
	Epsilon float64 `json:"epsilon"`

	Classification Classification `json:"classification"`

	// ExactUsed reports whether the four-point computation actually ran to
	// completion. False in heuristic mode and after a budget fallback.
	ExactUsed bool `json:"exactUsed"`

	// DroppedCount is the number of input vectors discarded for NaN/Inf
	// components before sampling.
	DroppedCount int `json:"droppedCount"`

	// SampleSize is the number of vectors the statistics were computed on.
	SampleSize int `json:"sampleSize"`

	CreatedAt time.Time `json:"createdAt"`
}

// IndeterminateMetrics returns the zeroed default result used whenever a
// document cannot be classified.
func IndeterminateMetrics(documentID string, dropped int, now time.Time) Metrics {
	return Metrics{
		DocumentID:     documentID,
		Classification: Indeterminate,
		DroppedCount:   dropped,
		CreatedAt:      now,
	}
}
