// Package properties manages compute resource properties, the typed values
// attached to algorithms, implementations and compute resources, and their types.
package properties

import (
	"go.uber.org/fx"
)

// Module provides the properties domain
var Module = fx.Module("properties",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
