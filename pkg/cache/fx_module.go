package cache

import (
	"context"
	"time"

	"go.uber.org/fx"
)

// FXModule wires the metrics cache into Fx and starts the periodic sweep.
var FXModule = fx.Module("cache",
	fx.Provide(
		NewConfig,
		NewMetricsCache,
		func(c *MetricsCache) Store { return c },
	),
	fx.Invoke(RegisterCacheLifecycle),
)

// RegisterCacheLifecycle runs the background sweeper between OnStart and
// OnStop.
func RegisterCacheLifecycle(lc fx.Lifecycle, c *MetricsCache) {
	done := make(chan struct{})
	stopped := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(stopped)
				ticker := time.NewTicker(c.cfg.SweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						c.Sweep()
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			<-stopped
			return nil
		},
	})
}
