package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/cipheratlas/geometry-engine/pkg/bus"
	"github.com/cipheratlas/geometry-engine/pkg/cache"
	"github.com/cipheratlas/geometry-engine/pkg/chit"
	"github.com/cipheratlas/geometry-engine/pkg/manifold"
	"github.com/cipheratlas/geometry-engine/pkg/tracer"
	"github.com/cipheratlas/geometry-engine/pkg/vectordb"
	"github.com/cipheratlas/geometry-engine/pkg/zeta"
)

// Logger defines the interface for logging operations in the engine package.
//
//go:generate mockgen -source=service.go -destination=mock_service.go -package=engine
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Enqueuer hands visualization events to the asynchronous publisher.
type Enqueuer interface {
	Enqueue(event bus.VisualizationEvent)
}

// Instrumentation receives domain-level measurements. Satisfied by
// *metrics.Metrics; nil means no instrumentation.
type Instrumentation interface {
	RecordComputation(result manifold.Metrics, mode manifold.Mode, duration time.Duration)
	RecordCacheResult(outcome string)
}

// Archiver persists computed metrics for audit and history. Failures are
// logged and swallowed; the archive never fails a request.
type Archiver interface {
	Save(ctx context.Context, m manifold.Metrics) error
}

// Result is the full response of one compute call: the metrics, the
// geometry packet derived from them, and the spectral signal.
type Result struct {
	Metrics  manifold.Metrics    `json:"metrics"`
	Packet   chit.GeometryPacket `json:"cgp"`
	Spectrum zeta.Spectrum       `json:"spectrum"`
	CacheHit bool                `json:"cacheHit"`
}

// Service orchestrates the analysis pipeline: cache lookup, embedding
// fetch, manifold analysis, packet and spectrum derivation, cache fill,
// event publication and archival.
type Service struct {
	source    vectordb.Source
	analyzer  *manifold.Analyzer
	store     cache.Store
	publisher Enqueuer
	logger    Logger

	instruments Instrumentation
	archive     Archiver
	trace       *tracer.Tracer

	// exactSem bounds concurrent exact-mode computations.
	exactSem *semaphore.Weighted
}

// NewService wires the pipeline's mandatory dependencies. Optional
// collaborators are attached with the With* builder methods.
func NewService(cfg Config, source vectordb.Source, analyzer *manifold.Analyzer, store cache.Store, publisher Enqueuer, logger Logger) *Service {
	if cfg.ExactConcurrency <= 0 {
		cfg.ExactConcurrency = DefaultExactConcurrency
	}
	return &Service{
		source:    source,
		analyzer:  analyzer,
		store:     store,
		publisher: publisher,
		logger:    logger,
		exactSem:  semaphore.NewWeighted(cfg.ExactConcurrency),
	}
}

// WithInstrumentation attaches domain metrics recording and returns the
// service for method chaining.
func (s *Service) WithInstrumentation(in Instrumentation) *Service {
	s.instruments = in
	return s
}

// WithArchiver attaches the best-effort metrics archive and returns the
// service for method chaining.
func (s *Service) WithArchiver(a Archiver) *Service {
	s.archive = a
	return s
}

// WithTracer attaches distributed tracing and returns the service for
// method chaining.
func (s *Service) WithTracer(t *tracer.Tracer) *Service {
	s.trace = t
	return s
}

// Compute returns the manifold metrics, geometry packet and spectrum for
// a document.
//
// With overrides set, the caller-supplied packet is normalized and the
// spectrum derived from its uniforms; the sampler, analyzer, cache and
// bus are all bypassed. Otherwise cached metrics are served when present,
// and a fresh computation fills the cache, enqueues a visualization
// event and archives the metrics. The response never waits on the event
// bus or the archive succeeding.
func (s *Service) Compute(ctx context.Context, documentID string, mode manifold.Mode, overrides *chit.GeometryPacket) (Result, error) {
	if s.trace != nil {
		spanCtx, sp := s.trace.StartSpan(ctx, "engine.compute")
		defer sp.End()
		s.trace.SetAttributes(sp, map[string]interface{}{
			"document.id": documentID,
			"mode":        string(mode),
			"synthetic":   overrides != nil,
		})
		ctx = spanCtx
	}

	if overrides != nil {
		return s.synthetic(documentID, *overrides), nil
	}

	if cached, ok := s.store.Get(documentID, mode); ok {
		if s.instruments != nil {
			s.instruments.RecordCacheResult("hit")
		}
		s.logger.Debug("serving manifold metrics from cache", nil, map[string]interface{}{
			"document_id": documentID,
			"mode":        string(mode),
		})
		return Result{
			Metrics:  cached,
			Packet:   chit.FromMetrics(cached),
			Spectrum: zeta.FromMetrics(cached),
			CacheHit: true,
		}, nil
	}
	if s.instruments != nil {
		s.instruments.RecordCacheResult("miss")
	}

	start := time.Now()

	set, err := s.source.FetchEmbeddings(ctx, documentID)
	if err != nil {
		s.logger.Error("failed to fetch embeddings", err, map[string]interface{}{
			"document_id": documentID,
		})
		return Result{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	if mode == manifold.ModeExact {
		if err := s.exactSem.Acquire(ctx, 1); err != nil {
			return Result{}, err
		}
		defer s.exactSem.Release(1)
	}

	result, err := s.analyzer.Analyze(ctx, documentID, set.Vectors, mode)
	if err != nil {
		return Result{}, err
	}

	packet := chit.FromMetrics(result)
	spectrum := zeta.FromMetrics(result)

	s.store.Put(documentID, mode, result)
	if s.instruments != nil {
		s.instruments.RecordComputation(result, mode, time.Since(start))
	}

	s.publisher.Enqueue(bus.VisualizationEvent{
		DocumentID: documentID,
		Packet:     packet,
		Spectrum:   spectrum,
		Timestamp:  result.CreatedAt,
	})

	if s.archive != nil {
		if err := s.archive.Save(ctx, result); err != nil {
			s.logger.Warn("metrics archive write failed", err, map[string]interface{}{
				"document_id": documentID,
			})
		}
	}

	return Result{Metrics: result, Packet: packet, Spectrum: spectrum}, nil
}

// Invalidate drops all cached variants for a document. Called when the
// ingestion pipeline signals that the document's embeddings changed.
func (s *Service) Invalidate(documentID string) {
	s.store.Invalidate(documentID)
	s.logger.Info("cache invalidated for document", nil, map[string]interface{}{
		"document_id": documentID,
	})
}

// synthetic serves the overrides path: normalize the supplied packet,
// derive the spectrum from its uniforms, and report metrics consistent
// with the shown surface. Nothing is cached, published or archived.
func (s *Service) synthetic(documentID string, p chit.GeometryPacket) Result {
	packet := chit.Normalize(p)
	spectrum := zeta.Generate(packet.CurvatureK, packet.Epsilon)

	return Result{
		Metrics: manifold.Metrics{
			DocumentID:     documentID,
			CurvatureK:     packet.CurvatureK,
			Epsilon:        packet.Epsilon,
			Classification: classificationForSurface(packet.SurfaceFn),
			CreatedAt:      time.Now().UTC(),
		},
		Packet:   packet,
		Spectrum: spectrum,
	}
}

func classificationForSurface(surface string) manifold.Classification {
	switch surface {
	case chit.SurfaceTractrix:
		return manifold.Hyperbolic
	case chit.SurfaceSphere:
		return manifold.Spherical
	default:
		return manifold.Euclidean
	}
}
