// Package softwareplatforms manages SDKs and frameworks, and their links to
// cloud services and compute resources.
package softwareplatforms

import (
	"go.uber.org/fx"
)

// Module provides the software platforms domain
var Module = fx.Module("softwareplatforms",
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
