// Package main provides the entry point for the Atlas API server
//
// @title Atlas API
// @version 1.0
// @description Catalog of quantum algorithms, their implementations, and the platforms and hardware they run on
// @host localhost:8080
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description HS256 token required on mutating routes when AUTH_JWT_SECRET is set (format: "Bearer <token>")
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

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
	"github.com/emergent-company/atlas/domain/scheduler"
	"github.com/emergent-company/atlas/domain/sdks"
	"github.com/emergent-company/atlas/domain/softwareplatforms"
	"github.com/emergent-company/atlas/domain/tags"
	"github.com/emergent-company/atlas/domain/tracing"
	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/internal/server"
	"github.com/emergent-company/atlas/internal/storage"
	"github.com/emergent-company/atlas/pkg/auth"
	"github.com/emergent-company/atlas/pkg/logger"
)

func main() {
	// .env.local overrides .env; neither overrides the real environment
	_ = godotenv.Load(".env.local", ".env")

	fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		database.Module,
		server.Module,
		storage.Module,
		auth.Module,
		tracing.Module,

		// Catalog
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

		// Operations
		health.Module,
		scheduler.Module,
	).Run()
}
