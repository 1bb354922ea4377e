// Package computeresources manages quantum and classical devices and simulators.
package computeresources

import (
	"go.uber.org/fx"
)

// Module provides the compute resources domain
var Module = fx.Module("computeresources",
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
