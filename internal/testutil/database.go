package testutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/internal/migrate"
)

const templateDBName = "atlas_test_template"

var (
	templateOnce sync.Once
	templateErr  error
)

// TestDB holds test database resources
type TestDB struct {
	Config  *config.Config
	Pool    *pgxpool.Pool
	DB      *bun.DB
	Name    string
	cleanup func()

	// per-test transaction
	tx    bun.Tx
	hasTx bool
}

// Close releases test database resources
func (t *TestDB) Close() {
	if t.cleanup != nil {
		t.cleanup()
	}
}

// GetDB returns the active test transaction, or the database when none is open.
func (t *TestDB) GetDB() bun.IDB {
	if t.hasTx {
		return t.tx
	}
	return t.DB
}

// BeginTestTx starts the transaction every query of the test runs in.
func (t *TestDB) BeginTestTx(ctx context.Context) error {
	if t.hasTx {
		return fmt.Errorf("transaction already started")
	}
	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	t.tx = tx
	t.hasTx = true
	return nil
}

// RollbackTestTx discards everything the test wrote.
func (t *TestDB) RollbackTestTx() error {
	if !t.hasTx {
		return nil
	}
	err := t.tx.Rollback()
	t.hasTx = false
	return err
}

// SetupTestDB creates an isolated database cloned from a template that holds
// the migrated schema. The template is built once per test binary; clones take
// tens of milliseconds. The database is dropped by Close.
//
// Connection settings come from POSTGRES_*, or from a throwaway container when
// TEST_USE_CONTAINERS=true.
func SetupTestDB(ctx context.Context, suffix string) (*TestDB, error) {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	baseCfg, err := config.NewConfig(log)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	baseCfg.Scheduler.Enabled = false
	baseCfg.Database.AutoMigrate = false

	if useContainers() {
		if err := applyContainer(ctx, &baseCfg.Database); err != nil {
			return nil, err
		}
	}

	templateOnce.Do(func() {
		templateErr = ensureTemplateDB(ctx, baseCfg, log)
	})
	if templateErr != nil {
		return nil, fmt.Errorf("ensure template db: %w", templateErr)
	}

	name := fmt.Sprintf("atlas_test_%s_%d", suffix, time.Now().UnixNano())
	if err := adminExec(ctx, baseCfg, fmt.Sprintf("CREATE DATABASE %s TEMPLATE %s", name, templateDBName)); err != nil {
		return nil, fmt.Errorf("create test db from template: %w", err)
	}

	testCfg := *baseCfg
	testCfg.Database.Database = name

	pool, err := createPool(ctx, &testCfg)
	if err != nil {
		dropDB(ctx, baseCfg, name)
		return nil, fmt.Errorf("connect to test db: %w", err)
	}
	db := database.Open(pool, false, log)

	return &TestDB{
		Config: &testCfg,
		Pool:   pool,
		DB:     db,
		Name:   name,
		cleanup: func() {
			_ = db.Close()
			pool.Close()
			dropDB(context.Background(), baseCfg, name)
		},
	}, nil
}

// ensureTemplateDB creates the template database when missing and brings
// its schema up to date. Up is a no-op on a current template.
func ensureTemplateDB(ctx context.Context, baseCfg *config.Config, log *slog.Logger) error {
	var exists bool
	err := withAdminPool(ctx, baseCfg, func(admin *pgxpool.Pool) error {
		return admin.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", templateDBName).Scan(&exists)
	})
	if err != nil {
		return fmt.Errorf("check template: %w", err)
	}
	if !exists {
		log.Info("creating template database", slog.String("name", templateDBName))
		if err := adminExec(ctx, baseCfg, "CREATE DATABASE "+templateDBName); err != nil {
			return fmt.Errorf("create template db: %w", err)
		}
	}

	templateCfg := *baseCfg
	templateCfg.Database.Database = templateDBName
	pool, err := createPool(ctx, &templateCfg)
	if err != nil {
		return fmt.Errorf("connect to template db: %w", err)
	}
	sqldb := stdlib.OpenDBFromPool(pool)
	err = migrate.NewSQLMigrator(sqldb, zap.NewNop()).Up(ctx)
	_ = sqldb.Close()
	pool.Close()
	if err != nil {
		if !exists {
			dropDB(ctx, baseCfg, templateDBName)
		}
		return fmt.Errorf("migrate template db: %w", err)
	}
	return nil
}

func createPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = 5
	return pgxpool.NewWithConfig(ctx, poolConfig)
}

// withAdminPool runs fn on a short-lived pool to the maintenance database.
func withAdminPool(ctx context.Context, baseCfg *config.Config, fn func(*pgxpool.Pool) error) error {
	adminCfg := *baseCfg
	adminCfg.Database.Database = "postgres"
	pool, err := createPool(ctx, &adminCfg)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	return fn(pool)
}

func adminExec(ctx context.Context, baseCfg *config.Config, sql string) error {
	return withAdminPool(ctx, baseCfg, func(admin *pgxpool.Pool) error {
		_, err := admin.Exec(ctx, sql)
		return err
	})
}

func dropDB(ctx context.Context, baseCfg *config.Config, name string) {
	_ = adminExec(ctx, baseCfg, fmt.Sprintf(
		"SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = '%s' AND pid <> pg_backend_pid()", name))
	_ = adminExec(ctx, baseCfg, "DROP DATABASE IF EXISTS "+name)
}
