// Package tags manages free-form labels on algorithms and implementations.
package tags

import (
	"go.uber.org/fx"
)

// Module provides the tags domain
var Module = fx.Module("tags",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
