// Package patternrelations links algorithms to external pattern URIs through typed relations.
package patternrelations

import (
	"go.uber.org/fx"
)

// Module provides the pattern relations domain
var Module = fx.Module("patternrelations",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
