// Package algorithmrelations manages typed, directed relations between algorithms.
package algorithmrelations

import (
	"go.uber.org/fx"
)

// Module provides the algorithm relations domain
var Module = fx.Module("algorithmrelations",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
