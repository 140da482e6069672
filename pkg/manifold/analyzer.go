package manifold

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cipheratlas/geometry-engine/pkg/sampler"
)

// Logger defines the interface for logging operations in the manifold package.
//
//go:generate mockgen -source=analyzer.go -destination=mock_logger.go -package=manifold
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// curvatureMargin keeps hyperbolic and spherical curvature strictly
// outside [-1,1], preserving the classification sign invariant even when
// the exact delta collapses toward zero.
const curvatureMargin = 0.05

// Analyzer classifies embedding sets and derives curvature parameters.
// It is stateless apart from configuration and safe for concurrent use.
type Analyzer struct {
	cfg    Config
	logger Logger

	// now is swapped out in tests for reproducible timestamps.
	now func() time.Time
}

// NewAnalyzer constructs an Analyzer from configuration.
func NewAnalyzer(cfg Config, logger Logger) *Analyzer {
	if cfg.SampleCap <= 0 {
		cfg.SampleCap = DefaultSampleCap
	}
	if cfg.ExactSampleCap <= 0 {
		cfg.ExactSampleCap = DefaultExactSampleCap
	}
	if cfg.TupleBudget <= 0 {
		cfg.TupleBudget = DefaultTupleBudget
	}
	return &Analyzer{cfg: cfg, logger: logger, now: time.Now}
}

// WithClock overrides the analyzer's time source. Intended for tests.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Analyze samples the given vectors and computes manifold metrics for the
// document. It never returns an error for data-quality conditions: too few
// usable vectors or a non-finite derivation yield an indeterminate result,
// and an exhausted exact budget falls back to the heuristic delta. The
// returned error is reserved for future hard failures and is currently
// always nil.
func (a *Analyzer) Analyze(ctx context.Context, documentID string, vectors [][]float64, mode Mode) (Metrics, error) {
	limit := a.cfg.SampleCap
	exactRequested := mode == ModeExact && a.cfg.ExactDelta
	if exactRequested {
		limit = a.cfg.ExactSampleCap
	}

	sampled, err := sampler.Select(vectors, limit)
	if err != nil {
		if errors.Is(err, sampler.ErrInsufficientData) {
			a.logger.Warn("insufficient embeddings for classification", nil, map[string]interface{}{
				"document_id": documentID,
				"usable":      len(vectors) - sampled.DroppedCount,
				"dropped":     sampled.DroppedCount,
			})
			return IndeterminateMetrics(documentID, sampled.DroppedCount, a.now()), nil
		}
		return IndeterminateMetrics(documentID, sampled.DroppedCount, a.now()), nil
	}
	if sampled.DroppedCount > 0 {
		a.logger.Warn("dropped non-finite embeddings", nil, map[string]interface{}{
			"document_id": documentID,
			"dropped":     sampled.DroppedCount,
		})
	}

	stats := computeShapeStatistics(sampled.Vectors)
	delta := stats.ratio
	exactUsed := false

	if exactRequested {
		exactDelta, exactErr := fourPointDelta(ctx, sampled.Vectors, a.cfg.TupleBudget)
		switch {
		case exactErr == nil:
			delta = exactDelta
			exactUsed = true
		case IsBudgetExceeded(exactErr):
			a.logger.Warn("exact delta over budget, falling back to heuristic", exactErr, map[string]interface{}{
				"document_id": documentID,
				"sample_size": len(sampled.Vectors),
			})
		default:
			a.logger.Error("exact delta failed, falling back to heuristic", exactErr, map[string]interface{}{
				"document_id": documentID,
			})
		}
	}

	classification := classify(stats.ratio)
	k := deriveCurvature(classification, stats.ratio, delta)

	if !finiteAll(stats.ratio, delta, k, stats.epsilon) {
		a.logger.Error("derivation produced non-finite metrics", ErrComputation, map[string]interface{}{
			"document_id": documentID,
		})
		return IndeterminateMetrics(documentID, sampled.DroppedCount, a.now()), nil
	}

	return Metrics{
		DocumentID:     documentID,
		ShapeRatio:     stats.ratio,
		Delta:          delta,
		CurvatureK:     k,
		Epsilon:        stats.epsilon,
		Classification: classification,
		ExactUsed:      exactUsed,
		DroppedCount:   sampled.DroppedCount,
		SampleSize:     len(sampled.Vectors),
		CreatedAt:      a.now(),
	}, nil
}

// deriveCurvature maps the classification plus dispersion statistics onto
// the signed curvature parameter.
func deriveCurvature(c Classification, ratio, delta float64) float64 {
	switch c {
	case Hyperbolic:
		return clamp(-1-4*clamp01(delta), -5, -1-curvatureMargin)
	case Spherical:
		return clamp(1+4*clamp01(1-ratio), 1+curvatureMargin, 5)
	case Euclidean:
		// Linear in the residual distance from the classification
		// boundaries: ratio at the spherical edge maps to +1, at the
		// hyperbolic edge to -1.
		span := hyperbolicThreshold - sphericalThreshold
		return clamp(1-2*(ratio-sphericalThreshold)/span, -1, 1)
	default:
		return 0
	}
}

func finiteAll(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
