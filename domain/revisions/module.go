package revisions

import "go.uber.org/fx"

// Module provides the revision store. Routes live with the revisioned entities.
var Module = fx.Module("revisions",
	fx.Provide(NewRepository),
)
