package files

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Repository handles database operations for implementation files
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new file repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log.With(logger.Scope("files.repo"))}
}

func (r *Repository) List(ctx context.Context, implementationID string, req paging.Request) (paging.Page[catalog.ImplementationFile], error) {
	page, err := catalog.List[catalog.ImplementationFile](ctx, r.db, req, "f", "id",
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("f.implementation_id = ?", implementationID)
		},
		catalog.Search("f", req.Search, "name"))
	if err != nil {
		r.log.Error("failed to list files", logger.Error(err), slog.String("implementation_id", implementationID))
	}
	return page, err
}

// ListAll returns every file of an implementation, unpaged.
func (r *Repository) ListAll(ctx context.Context, db bun.IDB, implementationID string) ([]catalog.ImplementationFile, error) {
	var files []catalog.ImplementationFile
	err := db.NewSelect().Model(&files).
		Where("f.implementation_id = ?", implementationID).
		OrderExpr("f.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return files, nil
}

func (r *Repository) Get(ctx context.Context, db bun.IDB, id string) (*catalog.ImplementationFile, error) {
	f := &catalog.ImplementationFile{}
	if err := catalog.Get(ctx, db, f, "File", id); err != nil {
		return nil, err
	}
	return f, nil
}

// FindByURL returns (nil, nil) when no file is stored under the key.
func (r *Repository) FindByURL(ctx context.Context, db bun.IDB, fileURL string) (*catalog.ImplementationFile, error) {
	f := &catalog.ImplementationFile{}
	if err := db.NewSelect().Model(f).Where("f.file_url = ?", fileURL).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return f, nil
}

func (r *Repository) Insert(ctx context.Context, db bun.IDB, f *catalog.ImplementationFile) error {
	if _, err := db.NewInsert().Model(f).Returning("id, created_at, updated_at").Exec(ctx); err != nil {
		r.log.Error("failed to create file", logger.Error(err), slog.String("file_url", f.FileURL))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, db bun.IDB, f *catalog.ImplementationFile) error {
	_, err := db.NewUpdate().Model(f).
		Column("name", "mime_type", "size").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, db bun.IDB, id string) error {
	if _, err := db.NewDelete().Model((*catalog.ImplementationFile)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		r.log.Error("failed to delete file", logger.Error(err), slog.String("id", id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}
