// Package discussions manages discussion topics on knowledge artifacts and
// their threaded comments.
package discussions

import (
	"go.uber.org/fx"
)

// Module provides the discussions domain
var Module = fx.Module("discussions",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
