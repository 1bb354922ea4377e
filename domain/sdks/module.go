package sdks

import (
	"go.uber.org/fx"
)

// Module provides the SDKs domain
var Module = fx.Module("sdks",
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
