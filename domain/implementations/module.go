// Package implementations manages implementations of algorithms, their links
// to software platforms, publications and tags, and their revision history.
package implementations

import (
	"go.uber.org/fx"
)

// Module provides the implementations domain
var Module = fx.Module("implementations",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
