// Package migrate applies the embedded goose migrations of the catalog schema.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/emergent-company/atlas/migrations"
)

var Module = fx.Options(
	fx.Provide(NewMigrator),
)

// Migrator runs schema migrations against one database.
type Migrator struct {
	db  *sql.DB
	log *zap.Logger
}

func NewMigrator(db *bun.DB, log *zap.Logger) *Migrator {
	return NewSQLMigrator(db.DB, log)
}

// NewSQLMigrator builds a Migrator over a plain *sql.DB, as cmd/migrate and
// the test harness hold one.
func NewSQLMigrator(db *sql.DB, log *zap.Logger) *Migrator {
	return &Migrator{db: db, log: log.Named("migrate")}
}

// Applied is one migration as reported by Status.
type Applied struct {
	Version   int64
	File      string
	Applied   bool
	AppliedAt time.Time
}

func (m *Migrator) provider() (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, m.db, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	return p, nil
}

func (m *Migrator) report(results []*goose.MigrationResult) {
	for _, r := range results {
		m.log.Info("migration applied",
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.String("direction", r.Direction),
			zap.Duration("took", r.Duration))
	}
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	p, err := m.provider()
	if err != nil {
		return err
	}
	results, err := p.Up(ctx)
	m.report(results)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	if len(results) == 0 {
		m.log.Info("schema is up to date")
	}
	return nil
}

// UpTo applies pending migrations up to and including version.
func (m *Migrator) UpTo(ctx context.Context, version int64) error {
	p, err := m.provider()
	if err != nil {
		return err
	}
	results, err := p.UpTo(ctx, version)
	m.report(results)
	if err != nil {
		return fmt.Errorf("migrate up to %d: %w", version, err)
	}
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	p, err := m.provider()
	if err != nil {
		return err
	}
	res, err := p.Down(ctx)
	if res != nil {
		m.report([]*goose.MigrationResult{res})
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Status lists every known migration and whether it is applied.
func (m *Migrator) Status(ctx context.Context) ([]Applied, error) {
	p, err := m.provider()
	if err != nil {
		return nil, err
	}
	st, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration status: %w", err)
	}
	out := make([]Applied, 0, len(st))
	for _, s := range st {
		out = append(out, Applied{
			Version:   s.Source.Version,
			File:      s.Source.Path,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}

// Version is the highest applied migration, 0 on an empty database.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	p, err := m.provider()
	if err != nil {
		return 0, err
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("schema version: %w", err)
	}
	return v, nil
}
