// geometryd is the cipher-geometry service binary. It assembles the
// manifold analysis pipeline with Fx: zap logging, Prometheus metrics,
// OTLP tracing, the Qdrant embedding source, the Postgres metrics
// archive, the event bus transport (RabbitMQ by default, Kafka via
// BUS_DRIVER=kafka) and the HTTP query API.
package main

import (
	"os"

	"go.uber.org/fx"

	"github.com/cipheratlas/geometry-engine/pkg/bus"
	"github.com/cipheratlas/geometry-engine/pkg/cache"
	"github.com/cipheratlas/geometry-engine/pkg/engine"
	"github.com/cipheratlas/geometry-engine/pkg/kafka"
	"github.com/cipheratlas/geometry-engine/pkg/logger"
	"github.com/cipheratlas/geometry-engine/pkg/manifold"
	"github.com/cipheratlas/geometry-engine/pkg/metrics"
	"github.com/cipheratlas/geometry-engine/pkg/postgres"
	"github.com/cipheratlas/geometry-engine/pkg/qdrant"
	"github.com/cipheratlas/geometry-engine/pkg/rabbit"
	"github.com/cipheratlas/geometry-engine/pkg/server"
	"github.com/cipheratlas/geometry-engine/pkg/tracer"
	"github.com/cipheratlas/geometry-engine/pkg/vectordb"
)

func main() {
	fx.New(buildOptions()...).Run()
}

func buildOptions() []fx.Option {
	opts := []fx.Option{
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		manifold.FXModule,
		cache.FXModule,
		bus.FXModule,
		qdrant.FXModule,
		postgres.FXModule,
		engine.FXModule,
		server.FXModule,
		fx.Provide(
			func(l *logger.Logger) manifold.Logger { return l },
			func(l *logger.Logger) bus.Logger { return l },
			func(l *logger.Logger) postgres.Logger { return l },
			func(l *logger.Logger) tracer.Logger { return l },
			func(l *logger.Logger) engine.Logger { return l },
			func(l *logger.Logger) server.Logger { return l },
			func(s *qdrant.EmbeddingsStore) vectordb.Source { return s },
			func(p *bus.AsyncPublisher) engine.Enqueuer { return p },
			newAPIServer,
		),
		fx.Invoke(attachCollaborators),
	}
	return append(opts, transportOptions()...)
}

// transportOptions selects the event bus transport. RabbitMQ is the
// default; BUS_DRIVER=kafka switches to the Kafka writer.
func transportOptions() []fx.Option {
	if os.Getenv("BUS_DRIVER") == "kafka" {
		return []fx.Option{
			kafka.FXModule,
			fx.Provide(
				func(l *logger.Logger) kafka.Logger { return l },
				func(c *kafka.Client) bus.Publisher { return c },
			),
			fx.Invoke(func(c *kafka.Client, m *metrics.Metrics) {
				c.WithObserver(m)
			}),
		}
	}

	return []fx.Option{
		rabbit.FXModule,
		fx.Provide(
			func(l *logger.Logger) rabbit.Logger { return l },
			func(r *rabbit.Rabbit) bus.Publisher { return r },
		),
	}
}

func newAPIServer(cfg server.Config, svc *engine.Service, archive *postgres.MetricsArchive, log *logger.Logger) *server.Server {
	return server.NewServer(cfg, svc, log).WithHistorian(archive)
}

// attachCollaborators hooks the optional collaborators onto the core
// components: operation metrics on the cache and publisher, and
// instrumentation, archival and tracing on the engine.
func attachCollaborators(svc *engine.Service, store *cache.MetricsCache, publisher *bus.AsyncPublisher, m *metrics.Metrics, archive *postgres.MetricsArchive, trace *tracer.Tracer) {
	store.WithObserver(m)
	publisher.WithObserver(m)
	svc.WithInstrumentation(m).WithArchiver(archive).WithTracer(trace)
}
