// Package database owns the catalog's Postgres connection: the pgx pool,
// the bun handle layered over it and the transaction helpers every
// repository writes through.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"go.uber.org/fx"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/internal/migrate"
	"github.com/emergent-company/atlas/pkg/logger"
)

var Module = fx.Module("database",
	fx.Provide(
		NewPgxPool,
		NewBunDB,
		fx.Annotate(
			func(db *bun.DB) bun.IDB { return db },
			fx.As(new(bun.IDB)),
		),
	),
	migrate.Module,
	fx.Invoke(AutoMigrate),
)

const connectTimeout = 10 * time.Second

// NewPgxPool connects to the catalog database and fails fast when it is unreachable.
func NewPgxPool(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (*pgxpool.Pool, error) {
	log = log.With(logger.Scope("database"))
	dbc := cfg.Database

	pc, err := pgxpool.ParseConfig(dbc.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	pc.MaxConns = int32(dbc.MaxOpenConns)
	pc.MinConns = int32(dbc.MaxIdleConns)
	pc.MaxConnIdleTime = dbc.MaxIdleTime

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping %s:%d/%s: %w", dbc.Host, dbc.Port, dbc.Database, err)
	}

	log.Info("connected to catalog database",
		slog.String("host", dbc.Host),
		slog.Int("port", dbc.Port),
		slog.String("database", dbc.Database),
		slog.Int("max_conns", dbc.MaxOpenConns))

	lc.Append(fx.StopHook(func() {
		log.Info("closing database pool")
		pool.Close()
	}))
	return pool, nil
}

// NewBunDB wraps the pool for the repositories.
func NewBunDB(lc fx.Lifecycle, pool *pgxpool.Pool, cfg *config.Config, log *slog.Logger) *bun.DB {
	db := Open(pool, cfg.Database.QueryDebug, log.With(logger.Scope("sql")))
	lc.Append(fx.StopHook(db.Close))
	return db
}

// Open builds a bun.DB over pool. Every statement is counted; with
// queryDebug each one is also logged.
func Open(pool *pgxpool.Pool, queryDebug bool, log *slog.Logger) *bun.DB {
	db := bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New())
	db.AddQueryHook(newQueryHook(log, queryDebug))
	return db
}

// AutoMigrate applies pending goose migrations on start when DB_AUTO_MIGRATE is set.
func AutoMigrate(lc fx.Lifecycle, m *migrate.Migrator, cfg *config.Config, log *slog.Logger) {
	if !cfg.Database.AutoMigrate {
		log.Info("auto migration disabled", logger.Scope("database"))
		return
	}
	lc.Append(fx.StartHook(m.Up))
}
