// Package health serves liveness, readiness, debug and server info endpoints.
package health

import (
	"go.uber.org/fx"
)

var Module = fx.Module("health",
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
