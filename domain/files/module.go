// Package files stores implementation files in object storage and tracks them in the database.
package files

import (
	"go.uber.org/fx"

	"github.com/emergent-company/atlas/internal/storage"
)

// Module provides the files domain
var Module = fx.Module("files",
	fx.Provide(func(s *storage.Service) BlobStore { return s }),
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
