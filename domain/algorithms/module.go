// Package algorithms is the root of the catalog: algorithms, their links to
// publications, problem types, application areas and tags, the cascading
// delete over everything that depends on them, and their revision history.
package algorithms

import (
	"go.uber.org/fx"
)

// Module provides the algorithms domain
var Module = fx.Module("algorithms",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
