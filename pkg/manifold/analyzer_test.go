package manifold

import (
	"context"
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
}

func newTestAnalyzer(cfg Config) *Analyzer {
	return NewAnalyzer(cfg, nopLogger{}).WithClock(fixedClock)
}

// treeVectors is a path metric with exponentially growing edge lengths:
// collinear points are an exact tree, so the two largest four-point sums
// coincide and the heuristic dispersion is high.
func treeVectors() [][]float64 {
	return [][]float64{{0}, {1}, {10}, {100}}
}

// shellVectors places points evenly on a unit circle; every centroid
// distance is identical.
func shellVectors() [][]float64 {
	vectors := make([][]float64, 12)
	for i := range vectors {
		angle := 2 * math.Pi * float64(i) / float64(len(vectors))
		vectors[i] = []float64{math.Cos(angle), math.Sin(angle)}
	}
	return vectors
}

// gaussianVectors draws a fixed-seed isotropic Gaussian cloud; the radius
// distribution of a 5-dimensional Gaussian has a coefficient of variation
// near 0.33, squarely in the euclidean band.
func gaussianVectors(n int) [][]float64 {
	rng := rand.New(rand.NewSource(7))
	vectors := make([][]float64, n)
	for i := range vectors {
		v := make([]float64, 5)
		for j := range v {
			v[j] = rng.NormFloat64()
		}
		vectors[i] = v
	}
	return vectors
}

func assertRanges(t *testing.T, m Metrics) {
	t.Helper()
	if m.ShapeRatio < 0 || m.ShapeRatio > 1 {
		t.Errorf("shape_ratio out of range: %v", m.ShapeRatio)
	}
	if m.Delta < 0 || m.Delta > 1 {
		t.Errorf("delta out of range: %v", m.Delta)
	}
	if m.CurvatureK < -5 || m.CurvatureK > 5 {
		t.Errorf("curvature_k out of range: %v", m.CurvatureK)
	}
	if m.Epsilon < 0 || m.Epsilon > 1 {
		t.Errorf("epsilon out of range: %v", m.Epsilon)
	}
	switch m.Classification {
	case Hyperbolic:
		if m.CurvatureK >= -1 {
			t.Errorf("hyperbolic requires curvature_k < -1, got %v", m.CurvatureK)
		}
	case Spherical:
		if m.CurvatureK <= 1 {
			t.Errorf("spherical requires curvature_k > 1, got %v", m.CurvatureK)
		}
	case Euclidean:
		if m.CurvatureK < -1 || m.CurvatureK > 1 {
			t.Errorf("euclidean requires curvature_k in [-1,1], got %v", m.CurvatureK)
		}
	}
}

func TestAnalyze_TreeMetricIsHyperbolic(t *testing.T) {
	a := newTestAnalyzer(Config{ExactDelta: true})
	m, err := a.Analyze(context.Background(), "doc-tree", treeVectors(), ModeExact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRanges(t, m)

	if m.Classification != Hyperbolic {
		t.Fatalf("expected hyperbolic, got %s (ratio=%v)", m.Classification, m.ShapeRatio)
	}
	if m.ShapeRatio <= 0.5 {
		t.Errorf("expected shape_ratio > 0.5, got %v", m.ShapeRatio)
	}
	if !m.ExactUsed {
		t.Error("expected exact path to run")
	}
	// A path metric satisfies the four-point condition exactly, so the
	// inverted delta sits at its maximum.
	if m.Delta < 0.99 {
		t.Errorf("expected delta near 1 for a tree metric, got %v", m.Delta)
	}
	if m.CurvatureK >= -1 {
		t.Errorf("expected curvature_k < -1, got %v", m.CurvatureK)
	}
}

func TestAnalyze_SphereShellIsSpherical(t *testing.T) {
	a := newTestAnalyzer(Config{})
	m, err := a.Analyze(context.Background(), "doc-shell", shellVectors(), ModeHeuristic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRanges(t, m)

	if m.Classification != Spherical {
		t.Fatalf("expected spherical, got %s (ratio=%v)", m.Classification, m.ShapeRatio)
	}
	if m.ShapeRatio >= 0.2 {
		t.Errorf("expected shape_ratio < 0.2, got %v", m.ShapeRatio)
	}
	if m.CurvatureK <= 1 {
		t.Errorf("expected curvature_k > 1, got %v", m.CurvatureK)
	}
}

func TestAnalyze_GaussianCloudIsEuclidean(t *testing.T) {
	a := newTestAnalyzer(Config{})
	m, err := a.Analyze(context.Background(), "doc-gauss", gaussianVectors(80), ModeHeuristic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRanges(t, m)

	if m.Classification != Euclidean {
		t.Fatalf("expected euclidean, got %s (ratio=%v)", m.Classification, m.ShapeRatio)
	}
	if m.CurvatureK < -1 || m.CurvatureK > 1 {
		t.Errorf("expected curvature_k in [-1,1], got %v", m.CurvatureK)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	vectors := gaussianVectors(150)
	a := newTestAnalyzer(Config{})

	first, err := a.Analyze(context.Background(), "doc-det", vectors, ModeHeuristic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := a.Analyze(context.Background(), "doc-det", vectors, ModeHeuristic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical metrics, got %+v vs %+v", first, second)
	}
}

func TestAnalyze_InsufficientDataIsIndeterminate(t *testing.T) {
	a := newTestAnalyzer(Config{})
	m, err := a.Analyze(context.Background(), "doc-few", [][]float64{{1, 2}, {3, 4}, {5, 6}}, ModeHeuristic)
	if err != nil {
		t.Fatalf("expected graceful degradation, got error: %v", err)
	}
	if m.Classification != Indeterminate {
		t.Errorf("expected indeterminate, got %s", m.Classification)
	}
	if m.CurvatureK != 0 || m.Epsilon != 0 {
		t.Errorf("expected zeroed parameters, got k=%v eps=%v", m.CurvatureK, m.Epsilon)
	}
}

func TestAnalyze_NaNVectorsDroppedButCounted(t *testing.T) {
	vectors := gaussianVectors(20)
	vectors[3] = []float64{math.NaN(), 0, 0, 0, 0}
	vectors[9] = []float64{0, math.Inf(1), 0, 0, 0}

	a := newTestAnalyzer(Config{})
	m, err := a.Analyze(context.Background(), "doc-nan", vectors, ModeHeuristic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.DroppedCount != 2 {
		t.Errorf("expected 2 dropped vectors, got %d", m.DroppedCount)
	}
	if m.Classification == Indeterminate {
		t.Error("expected computation to proceed on the remaining vectors")
	}
}

func TestAnalyze_BudgetExhaustionFallsBack(t *testing.T) {
	a := newTestAnalyzer(Config{ExactDelta: true, TupleBudget: 5})
	vectors := gaussianVectors(30)

	m, err := a.Analyze(context.Background(), "doc-budget", vectors, ModeExact)
	if err != nil {
		t.Fatalf("expected graceful fallback, got error: %v", err)
	}
	if m.ExactUsed {
		t.Error("expected exact_used=false after budget exhaustion")
	}
	if m.Delta != m.ShapeRatio {
		t.Errorf("expected heuristic delta after fallback, got delta=%v ratio=%v", m.Delta, m.ShapeRatio)
	}
	assertRanges(t, m)
}

func TestAnalyze_ExactRequestedButFlagOff(t *testing.T) {
	a := newTestAnalyzer(Config{ExactDelta: false})
	m, err := a.Analyze(context.Background(), "doc-flag", treeVectors(), ModeExact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ExactUsed {
		t.Error("expected heuristic result while EXACT_DELTA is off")
	}
	if m.Delta != m.ShapeRatio {
		t.Errorf("expected delta == shape_ratio, got %v vs %v", m.Delta, m.ShapeRatio)
	}
}

func TestFourPointDelta_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fourPointDelta(ctx, gaussianVectors(10), DefaultTupleBudget)
	if !IsBudgetExceeded(err) {
		t.Fatalf("expected budget error on cancelled context, got %v", err)
	}
}

func TestFourPointDelta_CoincidentPoints(t *testing.T) {
	vectors := [][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}}
	delta, err := fourPointDelta(context.Background(), vectors, DefaultTupleBudget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != 0 {
		t.Errorf("expected zero delta for coincident points, got %v", delta)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != ModeHeuristic {
		t.Errorf("empty mode should default to heuristic, got %v %v", m, err)
	}
	if m, err := ParseMode("exact"); err != nil || m != ModeExact {
		t.Errorf("exact mode should parse, got %v %v", m, err)
	}
	if _, err := ParseMode("quantum"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
