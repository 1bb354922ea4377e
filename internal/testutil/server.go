package testutil

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/fx"

	"github.com/emergent-company/atlas/domain/algorithmrelations"
	"github.com/emergent-company/atlas/domain/algorithms"
	"github.com/emergent-company/atlas/domain/applicationareas"
	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/domain/cloudservices"
	"github.com/emergent-company/atlas/domain/computeresources"
	"github.com/emergent-company/atlas/domain/discussions"
	"github.com/emergent-company/atlas/domain/files"
	"github.com/emergent-company/atlas/domain/health"
	"github.com/emergent-company/atlas/domain/implementations"
	"github.com/emergent-company/atlas/domain/patternrelations"
	"github.com/emergent-company/atlas/domain/problemtypes"
	"github.com/emergent-company/atlas/domain/properties"
	"github.com/emergent-company/atlas/domain/publications"
	"github.com/emergent-company/atlas/domain/revisions"
	"github.com/emergent-company/atlas/domain/sdks"
	"github.com/emergent-company/atlas/domain/softwareplatforms"
	"github.com/emergent-company/atlas/domain/tags"
	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/internal/server"
	"github.com/emergent-company/atlas/internal/storage"
	"github.com/emergent-company/atlas/pkg/auth"
	"github.com/emergent-company/atlas/pkg/logger"
)

// TestServer is the catalog API wired over a single database handle,
// usually the per-test transaction.
type TestServer struct {
	Echo   *echo.Echo
	DB     bun.IDB
	Config *config.Config
	Log    *slog.Logger
	Blobs  *storage.Service
}

// NewTestServer creates a test server with all routes registered.
func NewTestServer(testDB *TestDB) *TestServer {
	return newTestServerWithDB(testDB, testDB.GetDB(), testDB.Config)
}

// NewTestServerWithConfig builds a server over the open test transaction
// with a modified copy of the database config, e.g. with auth enabled.
func NewTestServerWithConfig(testDB *TestDB, mutate func(*config.Config)) *TestServer {
	cfg := *testDB.Config
	mutate(&cfg)
	return newTestServerWithDB(testDB, testDB.GetDB(), &cfg)
}

// newTestServerWithDB builds the same module graph as cmd/server, minus the
// listener, migrations and scheduler. Nothing is started.
func newTestServerWithDB(testDB *TestDB, db bun.IDB, cfg *config.Config) *TestServer {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ts := &TestServer{DB: db, Config: cfg, Log: log}

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg, log, testDB.Pool),
		fx.Provide(
			func() bun.IDB { return db },
			logger.NewHTTPLogger,
			server.NewEcho,
			auth.NewMiddleware,
			storage.NewService,
		),

		catalog.Module,
		revisions.Module,
		tags.Module,
		publications.Module,
		problemtypes.Module,
		applicationareas.Module,
		computeresources.Module,
		properties.Module,
		cloudservices.Module,
		sdks.Module,
		softwareplatforms.Module,
		discussions.Module,
		files.Module,
		implementations.Module,
		algorithmrelations.Module,
		patternrelations.Module,
		algorithms.Module,
		health.Module,

		fx.Populate(&ts.Echo, &ts.Blobs),
	)
	if err := app.Err(); err != nil {
		panic(err)
	}
	return ts
}
