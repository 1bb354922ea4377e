// Command migrate applies the embedded goose migrations to the configured database.
//
//	migrate [up|up-to <version>|down|status|version]
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/internal/migrate"
)

func main() {
	_ = godotenv.Load(".env.local", ".env")

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(os.Args[1:], log); err != nil {
		log.Error("migration failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(args []string, log *zap.Logger) error {
	var dbCfg config.DatabaseConfig
	if err := env.Parse(&dbCfg); err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	db := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dbCfg.DSN())))
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable at %s:%d: %w", dbCfg.Host, dbCfg.Port, err)
	}

	m := migrate.NewSQLMigrator(db, log)
	cmd := "up"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "up":
		return m.Up(ctx)
	case "up-to":
		if len(args) < 2 {
			return fmt.Errorf("up-to requires a version")
		}
		v, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		return m.UpTo(ctx, v)
	case "down":
		return m.Down(ctx)
	case "status":
		st, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, a := range st {
			log.Info("migration",
				zap.Int64("version", a.Version),
				zap.String("file", a.File),
				zap.Bool("applied", a.Applied),
				zap.Time("applied_at", a.AppliedAt))
		}
		return nil
	case "version":
		v, err := m.Version(ctx)
		if err != nil {
			return err
		}
		log.Info("database version", zap.Int64("version", v))
		return nil
	default:
		return fmt.Errorf("unknown command %q (want up, up-to, down, status or version)", cmd)
	}
}
