package errors

import "go.uber.org/fx"

// Module provides a *Registry and applies the Config read from the
// environment to the process.
var Module = fx.Module("errors",
	fx.Provide(
		NewRegistry,
		LoadConfig,
	),
	fx.Invoke(Configure),
)
