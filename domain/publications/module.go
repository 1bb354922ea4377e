// Package publications manages the papers and articles cited by algorithms and
// implementations.
package publications

import (
	"go.uber.org/fx"
)

// Module provides the publications domain
var Module = fx.Module("publications",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
