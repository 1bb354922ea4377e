// Package problemtypes manages the tree of problem classes algorithms solve.
package problemtypes

import (
	"go.uber.org/fx"
)

// Module provides the problem types domain
var Module = fx.Module("problemtypes",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
