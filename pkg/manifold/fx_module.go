package manifold

import "go.uber.org/fx"

// FXModule wires the analyzer into Fx. The Logger binding is supplied by
// the application (see cmd/geometryd).
var FXModule = fx.Module("manifold",
	fx.Provide(
		NewConfig,
		NewAnalyzer,
	),
)
