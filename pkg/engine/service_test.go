package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cipheratlas/geometry-engine/pkg/bus"
	"github.com/cipheratlas/geometry-engine/pkg/cache"
	"github.com/cipheratlas/geometry-engine/pkg/chit"
	"github.com/cipheratlas/geometry-engine/pkg/manifold"
	"github.com/cipheratlas/geometry-engine/pkg/vectordb"
	"github.com/cipheratlas/geometry-engine/pkg/zeta"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

type fakeSource struct {
	calls   int
	vectors [][]float64
	err     error
}

func (f *fakeSource) FetchEmbeddings(_ context.Context, documentID string) (vectordb.EmbeddingSet, error) {
	f.calls++
	if f.err != nil {
		return vectordb.EmbeddingSet{}, f.err
	}
	return vectordb.EmbeddingSet{DocumentID: documentID, Vectors: f.vectors}, nil
}

type recordingEnqueuer struct {
	events []bus.VisualizationEvent
}

func (r *recordingEnqueuer) Enqueue(event bus.VisualizationEvent) {
	r.events = append(r.events, event)
}

type failingArchiver struct {
	calls int
}

func (f *failingArchiver) Save(context.Context, manifold.Metrics) error {
	f.calls++
	return errors.New("archive down")
}

type recordingInstrumentation struct {
	computations int
	outcomes     []string
}

func (r *recordingInstrumentation) RecordComputation(manifold.Metrics, manifold.Mode, time.Duration) {
	r.computations++
}

func (r *recordingInstrumentation) RecordCacheResult(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

func testVectors() [][]float64 {
	return [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 0},
		{0.5, 0.5, 0.5},
		{1, 0, 1},
	}
}

func newTestService(source *fakeSource, publisher *recordingEnqueuer) (*Service, *cache.MetricsCache) {
	store := cache.NewMetricsCache(cache.Config{})
	analyzer := manifold.NewAnalyzer(manifold.Config{}, nopLogger{})
	svc := NewService(Config{}, source, analyzer, store, publisher, nopLogger{})
	return svc, store
}

func TestComputeCachesByDocumentAndMode(t *testing.T) {
	source := &fakeSource{vectors: testVectors()}
	publisher := &recordingEnqueuer{}
	svc, _ := newTestService(source, publisher)

	first, err := svc.Compute(context.Background(), "doc-1", manifold.ModeHeuristic, nil)
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Equal(t, "doc-1", first.Metrics.DocumentID)
	require.Equal(t, 1, source.calls)
	require.Len(t, publisher.events, 1)
	require.Equal(t, "doc-1", publisher.events[0].DocumentID)

	second, err := svc.Compute(context.Background(), "doc-1", manifold.ModeHeuristic, nil)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.Metrics, second.Metrics)
	require.Equal(t, first.Packet, second.Packet)
	require.Equal(t, 1, source.calls, "cache hit must not refetch embeddings")
	require.Len(t, publisher.events, 1, "cache hit must not publish again")
}

func TestComputeRecordsCacheOutcomes(t *testing.T) {
	source := &fakeSource{vectors: testVectors()}
	publisher := &recordingEnqueuer{}
	svc, _ := newTestService(source, publisher)

	instruments := &recordingInstrumentation{}
	svc.WithInstrumentation(instruments)

	_, err := svc.Compute(context.Background(), "doc-1", manifold.ModeHeuristic, nil)
	require.NoError(t, err)
	_, err = svc.Compute(context.Background(), "doc-1", manifold.ModeHeuristic, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"miss", "hit"}, instruments.outcomes)
	require.Equal(t, 1, instruments.computations)
}

func TestComputeSourceUnavailable(t *testing.T) {
	source := &fakeSource{err: errors.New("grpc: connection refused")}
	publisher := &recordingEnqueuer{}
	svc, _ := newTestService(source, publisher)

	_, err := svc.Compute(context.Background(), "doc-1", manifold.ModeHeuristic, nil)
	require.Error(t, err)
	require.True(t, IsSourceUnavailable(err))
	require.ErrorIs(t, err, ErrSourceUnavailable)
	require.Empty(t, publisher.events)
}

func TestComputeArchiveFailureDoesNotFailRequest(t *testing.T) {
	source := &fakeSource{vectors: testVectors()}
	publisher := &recordingEnqueuer{}
	svc, _ := newTestService(source, publisher)

	archive := &failingArchiver{}
	svc.WithArchiver(archive)

	result, err := svc.Compute(context.Background(), "doc-1", manifold.ModeHeuristic, nil)
	require.NoError(t, err)
	require.Equal(t, 1, archive.calls)
	require.NotEqual(t, manifold.Indeterminate, result.Metrics.Classification)
}

func TestComputeOverridesBypassPipeline(t *testing.T) {
	source := &fakeSource{vectors: testVectors()}
	publisher := &recordingEnqueuer{}
	svc, store := newTestService(source, publisher)

	overrides := &chit.GeometryPacket{
		CurvatureK: 9,
		Epsilon:    2,
		SurfaceFn:  chit.SurfaceTractrix,
	}
	result, err := svc.Compute(context.Background(), "doc-1", manifold.ModeHeuristic, overrides)
	require.NoError(t, err)

	require.Equal(t, chit.SpecVersion, result.Packet.Spec)
	require.Equal(t, 5.0, result.Packet.CurvatureK, "curvature clamps to the allowed range")
	require.Equal(t, 1.0, result.Packet.Epsilon)
	require.Equal(t, chit.SurfaceTractrix, result.Packet.SurfaceFn)
	require.Equal(t, manifold.Hyperbolic, result.Metrics.Classification)
	require.Equal(t, zeta.Generate(5, 1), result.Spectrum)

	require.Equal(t, 0, source.calls, "overrides must not touch the embedding source")
	require.Empty(t, publisher.events, "overrides must not publish events")
	require.Equal(t, 0, store.Len(), "overrides must not fill the cache")
}

func TestInvalidateForcesRecompute(t *testing.T) {
	source := &fakeSource{vectors: testVectors()}
	publisher := &recordingEnqueuer{}
	svc, _ := newTestService(source, publisher)

	_, err := svc.Compute(context.Background(), "doc-1", manifold.ModeHeuristic, nil)
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)

	svc.Invalidate("doc-1")

	again, err := svc.Compute(context.Background(), "doc-1", manifold.ModeHeuristic, nil)
	require.NoError(t, err)
	require.False(t, again.CacheHit)
	require.Equal(t, 2, source.calls)
}

func TestComputeExactModeBounded(t *testing.T) {
	source := &fakeSource{vectors: testVectors()}
	publisher := &recordingEnqueuer{}
	store := cache.NewMetricsCache(cache.Config{})
	analyzer := manifold.NewAnalyzer(manifold.Config{ExactDelta: true}, nopLogger{})
	svc := NewService(Config{ExactConcurrency: 1}, source, analyzer, store, publisher, nopLogger{})

	result, err := svc.Compute(context.Background(), "doc-1", manifold.ModeExact, nil)
	require.NoError(t, err)
	require.True(t, result.Metrics.ExactUsed)
	require.False(t, result.CacheHit)
}
