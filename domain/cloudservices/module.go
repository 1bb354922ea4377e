package cloudservices

import (
	"go.uber.org/fx"
)

// Module provides the cloud services domain
var Module = fx.Module("cloudservices",
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
