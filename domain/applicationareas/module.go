package applicationareas

import (
	"go.uber.org/fx"
)

// Module provides the application areas domain
var Module = fx.Module("applicationareas",
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
