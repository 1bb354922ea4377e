package patternrelations

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

// Repository handles database operations for pattern relations and their types
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new pattern relation repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log.With(logger.Scope("patternrelations.repo"))}
}

func withType(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("PatternRelationType")
}

func (r *Repository) ListTypes(ctx context.Context, req paging.Request) (paging.Page[catalog.PatternRelationType], error) {
	page, err := catalog.List[catalog.PatternRelationType](ctx, r.db, req, "prt", "id",
		catalog.Search("prt", req.Search, "name"))
	if err != nil {
		r.log.Error("failed to list pattern relation types", logger.Error(err))
	}
	return page, err
}

func (r *Repository) GetType(ctx context.Context, db bun.IDB, id string) (*catalog.PatternRelationType, error) {
	t := &catalog.PatternRelationType{}
	if err := catalog.Get(ctx, db, t, "PatternRelationType", id); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Repository) FindTypeByName(ctx context.Context, db bun.IDB, name string) (*catalog.PatternRelationType, error) {
	t := &catalog.PatternRelationType{}
	if err := db.NewSelect().Model(t).Where("prt.name = ?", name).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return t, nil
}

// InsertType reports false when a type with the same name already exists.
func (r *Repository) InsertType(ctx context.Context, db bun.IDB, t *catalog.PatternRelationType) (bool, error) {
	res, err := db.NewInsert().Model(t).On("CONFLICT (name) DO NOTHING").Returning("NULL").Exec(ctx)
	if err != nil {
		r.log.Error("failed to create pattern relation type", logger.Error(err), slog.String("name", t.Name))
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repository) UpdateType(ctx context.Context, db bun.IDB, t *catalog.PatternRelationType) error {
	_, err := db.NewUpdate().Model(t).
		Column("name").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) DeleteType(ctx context.Context, db bun.IDB, id string) error {
	if _, err := db.NewDelete().Model((*catalog.PatternRelationType)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) CountByType(ctx context.Context, db bun.IDB, typeID string) (int, error) {
	n, err := db.NewSelect().Model((*catalog.PatternRelation)(nil)).
		Where("pattern_relation_type_id = ?", typeID).
		Count(ctx)
	if err != nil {
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	return n, nil
}

// List returns pattern relations, optionally limited to one algorithm.
func (r *Repository) List(ctx context.Context, algorithmID string, req paging.Request) (paging.Page[catalog.PatternRelation], error) {
	scopes := []catalog.Scope{withType, catalog.Search("pr", req.Search, "pattern", "description")}
	if algorithmID != "" {
		scopes = append(scopes, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("pr.algorithm_id = ?", algorithmID)
		})
	}
	page, err := catalog.List[catalog.PatternRelation](ctx, r.db, req, "pr", "id", scopes...)
	if err != nil {
		r.log.Error("failed to list pattern relations", logger.Error(err), slog.String("algorithm_id", algorithmID))
	}
	return page, err
}

func (r *Repository) Get(ctx context.Context, db bun.IDB, id string) (*catalog.PatternRelation, error) {
	rel := &catalog.PatternRelation{}
	err := db.NewSelect().Model(rel).Apply(withType).Where("pr.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound("PatternRelation", id)
		}
		r.log.Error("failed to get pattern relation", logger.Error(err), slog.String("id", id))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return rel, nil
}

func (r *Repository) Insert(ctx context.Context, db bun.IDB, rel *catalog.PatternRelation) error {
	if _, err := db.NewInsert().Model(rel).Returning("id, created_at, updated_at").Exec(ctx); err != nil {
		r.log.Error("failed to create pattern relation", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, db bun.IDB, rel *catalog.PatternRelation) error {
	_, err := db.NewUpdate().Model(rel).
		Column("algorithm_id", "pattern", "pattern_relation_type_id", "description").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to update pattern relation", logger.Error(err), slog.String("id", rel.ID))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, db bun.IDB, id string) error {
	if _, err := db.NewDelete().Model((*catalog.PatternRelation)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// DeleteByAlgorithm removes every pattern relation of the algorithm.
func (r *Repository) DeleteByAlgorithm(ctx context.Context, db bun.IDB, algorithmID string) (int64, error) {
	res, err := db.NewDelete().Model((*catalog.PatternRelation)(nil)).
		Where("algorithm_id = ?", algorithmID).
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to delete pattern relations", logger.Error(err), slog.String("algorithm_id", algorithmID))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
