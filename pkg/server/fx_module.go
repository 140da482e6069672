package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/cipheratlas/geometry-engine/pkg/logger"
)

// FXModule integrates the query API server into an Fx-based application.
// It provides the Server factory and registers lifecycle hooks that start
// serving on application start and drain connections on stop.
var FXModule = fx.Module("server",
	fx.Provide(
		NewConfig,
	),
	fx.Invoke(RegisterServerLifecycle),
)

// RegisterServerLifecycle launches the API server in a background
// goroutine on start and shuts it down gracefully on stop.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting geometry API server", nil, map[string]interface{}{
					"address": s.Address(),
				})

				if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Error starting geometry API server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down geometry API server", nil, nil)
			return s.Shutdown(ctx)
		},
	})
}
