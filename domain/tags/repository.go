package tags

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Repository handles database operations for tags
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new tag repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("tags.repo")),
	}
}

func (r *Repository) List(ctx context.Context, req paging.Request) (paging.Page[catalog.Tag], error) {
	page, err := catalog.List[catalog.Tag](ctx, r.db, req, "tag", "value",
		catalog.Search("tag", req.Search, "value", "category"))
	if err != nil {
		r.log.Error("failed to list tags", logger.Error(err))
	}
	return page, err
}

// Get returns the tag with the given value.
func (r *Repository) Get(ctx context.Context, db bun.IDB, value string) (*catalog.Tag, error) {
	t := &catalog.Tag{}
	err := db.NewSelect().Model(t).Where("tag.value = ?", value).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound("Tag", value)
		}
		r.log.Error("failed to get tag", logger.Error(err), slog.String("value", value))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return t, nil
}

// Insert stores t. It reports false when a tag with the same value exists.
func (r *Repository) Insert(ctx context.Context, db bun.IDB, t *catalog.Tag) (bool, error) {
	res, err := db.NewInsert().Model(t).On("CONFLICT (value) DO NOTHING").Returning("NULL").Exec(ctx)
	if err != nil {
		r.log.Error("failed to create tag", logger.Error(err), slog.String("value", t.Value))
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Ensure returns the tag with t's value, creating it from t when missing.
func (r *Repository) Ensure(ctx context.Context, db bun.IDB, t *catalog.Tag) (*catalog.Tag, error) {
	if _, err := r.Insert(ctx, db, t); err != nil {
		return nil, err
	}
	return r.Get(ctx, db, t.Value)
}

// Delete removes the tag row. Links must be gone first.
func (r *Repository) Delete(ctx context.Context, db bun.IDB, value string) error {
	if _, err := db.NewDelete().Model((*catalog.Tag)(nil)).Where("value = ?", value).Exec(ctx); err != nil {
		r.log.Error("failed to delete tag", logger.Error(err), slog.String("value", value))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// DeleteOrphans removes tags created before cutoff that are linked to no
// algorithm and no implementation.
func (r *Repository) DeleteOrphans(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*catalog.Tag)(nil)).
		Where("tag.created_at < ?", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM ? AS l WHERE l.tag_value = tag.value)", bun.Ident(catalog.AlgorithmTags.Table)).
		Where("NOT EXISTS (SELECT 1 FROM ? AS l WHERE l.tag_value = tag.value)", bun.Ident(catalog.ImplementationTags.Table)).
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to delete orphan tags", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Algorithms returns the algorithms tagged with value.
func (r *Repository) Algorithms(ctx context.Context, value string, req paging.Request) (paging.Page[catalog.Algorithm], error) {
	return catalog.List[catalog.Algorithm](ctx, r.db, req, "alg", "id",
		catalog.AlgorithmTags.Lefts("alg", "id", value))
}

// Implementations returns the implementations tagged with value.
func (r *Repository) Implementations(ctx context.Context, value string, req paging.Request) (paging.Page[catalog.Implementation], error) {
	return catalog.List[catalog.Implementation](ctx, r.db, req, "impl", "id",
		catalog.ImplementationTags.Lefts("impl", "id", value))
}

// Of returns the tags linked through l to ownerID.
func (r *Repository) Of(ctx context.Context, l catalog.LinkTable, ownerID string, req paging.Request) (paging.Page[catalog.Tag], error) {
	return catalog.List[catalog.Tag](ctx, r.db, req, "tag", "value",
		l.Rights("tag", "value", ownerID),
		catalog.Search("tag", req.Search, "value", "category"))
}
