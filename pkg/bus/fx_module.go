package bus

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the async publisher into Fx. The Publisher transport and
// Logger bindings are supplied by the application (see cmd/geometryd).
var FXModule = fx.Module("bus",
	fx.Provide(
		func(transport Publisher, logger Logger) *AsyncPublisher {
			return NewAsyncPublisher(transport, logger, DefaultQueueSize)
		},
	),
	fx.Invoke(RegisterBusLifecycle),
)

// RegisterBusLifecycle starts the background worker on OnStart and drains
// it on OnStop.
func RegisterBusLifecycle(lc fx.Lifecycle, p *AsyncPublisher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Stop()
			return nil
		},
	})
}
