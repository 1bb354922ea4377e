package properties

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

// Repository handles database operations for compute resource properties and their types
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new property repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("properties.repo")),
	}
}

// --- Property types ---

// ListTypes returns a page of property types, optionally filtered by name.
func (r *Repository) ListTypes(ctx context.Context, req paging.Request) (paging.Page[catalog.ComputeResourcePropertyType], error) {
	var types []catalog.ComputeResourcePropertyType
	q := r.db.NewSelect().Model(&types)
	if req.Search != "" {
		q = q.Where("crpt.name ILIKE ?", paging.Like(req.Search))
	}
	total, err := req.Apply(q, "crpt", "id").ScanAndCount(ctx)
	if err != nil {
		r.log.Error("failed to list property types", logger.Error(err))
		return paging.Page[catalog.ComputeResourcePropertyType]{}, apperror.ErrDatabase.WithInternal(err)
	}
	return paging.New(types, total, req), nil
}

// GetType loads a property type.
func (r *Repository) GetType(ctx context.Context, db bun.IDB, id string) (*catalog.ComputeResourcePropertyType, error) {
	t := &catalog.ComputeResourcePropertyType{}
	if err := catalog.Get(ctx, db, t, "ComputeResourcePropertyType", id); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateType inserts t and fills its generated columns.
func (r *Repository) CreateType(ctx context.Context, db bun.IDB, t *catalog.ComputeResourcePropertyType) error {
	if _, err := db.NewInsert().Model(t).Returning("*").Exec(ctx); err != nil {
		r.log.Error("failed to create property type", logger.Error(err), slog.String("name", t.Name))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// UpdateType writes name, datatype and description.
func (r *Repository) UpdateType(ctx context.Context, db bun.IDB, t *catalog.ComputeResourcePropertyType) error {
	_, err := db.NewUpdate().Model(t).
		Column("name", "datatype", "description").
		Set("updated_at = now()").
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to update property type", logger.Error(err), slog.String("id", t.ID))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// DeleteType removes a property type.
func (r *Repository) DeleteType(ctx context.Context, db bun.IDB, id string) error {
	_, err := db.NewDelete().Model((*catalog.ComputeResourcePropertyType)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		r.log.Error("failed to delete property type", logger.Error(err), slog.String("id", id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// CountByType counts the properties using a type.
func (r *Repository) CountByType(ctx context.Context, db bun.IDB, typeID string) (int, error) {
	n, err := db.NewSelect().Model((*catalog.ComputeResourceProperty)(nil)).Where("type_id = ?", typeID).Count(ctx)
	if err != nil {
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	return n, nil
}

// --- Properties ---

// Get loads a property with its type. It returns (nil, nil) when the row is missing
// so callers can pick the not-found message.
func (r *Repository) Get(ctx context.Context, db bun.IDB, id string) (*catalog.ComputeResourceProperty, error) {
	p := &catalog.ComputeResourceProperty{}
	err := db.NewSelect().Model(p).Relation("Type").Where("crp.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get property", logger.Error(err), slog.String("id", id))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return p, nil
}

// ListByOwner returns a page of the owner's properties.
func (r *Repository) ListByOwner(ctx context.Context, o Owner, req paging.Request) (paging.Page[catalog.ComputeResourceProperty], error) {
	var props []catalog.ComputeResourceProperty
	q := r.db.NewSelect().Model(&props).Relation("Type").Where("crp.? = ?", bun.Ident(o.Column), o.ID)
	if req.Search != "" {
		q = q.Where("crp.value ILIKE ?", paging.Like(req.Search))
	}
	total, err := req.Apply(q, "crp", "id").ScanAndCount(ctx)
	if err != nil {
		r.log.Error("failed to list properties", logger.Error(err), slog.String("owner", o.Column), slog.String("id", o.ID))
		return paging.Page[catalog.ComputeResourceProperty]{}, apperror.ErrDatabase.WithInternal(err)
	}
	return paging.New(props, total, req), nil
}

// Insert stores a new property.
func (r *Repository) Insert(ctx context.Context, db bun.IDB, p *catalog.ComputeResourceProperty) error {
	if _, err := db.NewInsert().Model(p).Returning("id, created_at, updated_at").Exec(ctx); err != nil {
		r.log.Error("failed to create property", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// Update writes value, type and owner columns.
func (r *Repository) Update(ctx context.Context, db bun.IDB, p *catalog.ComputeResourceProperty) error {
	_, err := db.NewUpdate().Model(p).
		Column("value", "type_id", "algorithm_id", "implementation_id", "compute_resource_id").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to update property", logger.Error(err), slog.String("id", p.ID))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// Delete removes one property.
func (r *Repository) Delete(ctx context.Context, db bun.IDB, id string) error {
	_, err := db.NewDelete().Model((*catalog.ComputeResourceProperty)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		r.log.Error("failed to delete property", logger.Error(err), slog.String("id", id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// DeleteByOwner removes every property of the owner. Used by owner delete cascades.
func (r *Repository) DeleteByOwner(ctx context.Context, db bun.IDB, o Owner) (int64, error) {
	res, err := db.NewDelete().Model((*catalog.ComputeResourceProperty)(nil)).
		Where("? = ?", bun.Ident(o.Column), o.ID).
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to delete owner properties", logger.Error(err), slog.String("owner", o.Column), slog.String("id", o.ID))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
