package engine

import (
	"go.uber.org/fx"
)

// FXModule wires the orchestration service. The embedding source, cache
// store, publisher and logger bindings are supplied by the application
// (see cmd/geometryd); optional collaborators are attached there too.
var FXModule = fx.Module("engine",
	fx.Provide(
		NewConfig,
		NewService,
	),
)
