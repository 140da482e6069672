package server

import (
	"context"
	"net/http"

	"github.com/cipheratlas/geometry-engine/pkg/chit"
	"github.com/cipheratlas/geometry-engine/pkg/engine"
	"github.com/cipheratlas/geometry-engine/pkg/manifold"
	"github.com/cipheratlas/geometry-engine/pkg/postgres"
)

// Logger defines the interface for logging operations in the server package.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=server
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Computer is the engine surface the API depends on. Satisfied by
// *engine.Service.
type Computer interface {
	Compute(ctx context.Context, documentID string, mode manifold.Mode, overrides *chit.GeometryPacket) (engine.Result, error)
	Invalidate(documentID string)
}

// Historian reads back archived computations. Satisfied by
// *postgres.MetricsArchive; nil disables the history endpoint.
type Historian interface {
	ListRecent(ctx context.Context, documentID string, limit int) ([]postgres.MetricsRecord, error)
}

// Server is the query API for the geometry engine. It exposes the
// visualization, simulation, invalidation and history endpoints over
// plain net/http.
type Server struct {
	httpServer *http.Server
	engine     Computer
	history    Historian
	logger     Logger
}

// NewServer wires the API routes onto an http.Server. The history
// endpoint responds 503 until a Historian is attached.
func NewServer(cfg Config, eng Computer, logger Logger) *Server {
	if cfg.Address == "" {
		cfg.Address = DefaultServerAddress
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	s := &Server{
		engine: eng,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/cipher/geometry/visualize_manifold", s.handleVisualizeManifold)
	mux.HandleFunc("/cipher/geometry/demo-packet", s.handleDemoPacket)
	mux.HandleFunc("/cipher/geometry/simulate", s.handleSimulate)
	mux.HandleFunc("/cipher/geometry/invalidate", s.handleInvalidate)
	mux.HandleFunc("/cipher/geometry/history", s.handleHistory)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// WithHistorian attaches the archive read side and returns the server for
// method chaining.
func (s *Server) WithHistorian(h Historian) *Server {
	s.history = h
	return s
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Address returns the listen address the server was configured with.
func (s *Server) Address() string {
	return s.httpServer.Addr
}

// ListenAndServe blocks serving the API until Shutdown is called.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
