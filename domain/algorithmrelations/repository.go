package algorithmrelations

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

// Repository handles database operations for algorithm relations and relation types
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new algorithm relation repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log.With(logger.Scope("algorithmrelations.repo"))}
}

// --- Relation types ---

func (r *Repository) ListTypes(ctx context.Context, req paging.Request) (paging.Page[catalog.AlgorithmRelationType], error) {
	page, err := catalog.List[catalog.AlgorithmRelationType](ctx, r.db, req, "art", "id",
		catalog.Search("art", req.Search, "name", "inverse_type_name"))
	if err != nil {
		r.log.Error("failed to list relation types", logger.Error(err))
	}
	return page, err
}

func (r *Repository) GetType(ctx context.Context, db bun.IDB, id string) (*catalog.AlgorithmRelationType, error) {
	t := &catalog.AlgorithmRelationType{}
	if err := catalog.Get(ctx, db, t, "AlgorithmRelationType", id); err != nil {
		return nil, err
	}
	return t, nil
}

// FindTypeByName returns (nil, nil) when no type has the name.
func (r *Repository) FindTypeByName(ctx context.Context, db bun.IDB, name string) (*catalog.AlgorithmRelationType, error) {
	t := &catalog.AlgorithmRelationType{}
	err := db.NewSelect().Model(t).Where("art.name = ?", name).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to find relation type", logger.Error(err), slog.String("name", name))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return t, nil
}

// InsertType stores t unless its name is taken. It reports whether a row was written.
func (r *Repository) InsertType(ctx context.Context, db bun.IDB, t *catalog.AlgorithmRelationType) (bool, error) {
	res, err := db.NewInsert().Model(t).On("CONFLICT (name) DO NOTHING").Returning("NULL").Exec(ctx)
	if err != nil {
		r.log.Error("failed to create relation type", logger.Error(err), slog.String("name", t.Name))
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repository) UpdateType(ctx context.Context, db bun.IDB, t *catalog.AlgorithmRelationType) error {
	_, err := db.NewUpdate().Model(t).
		Column("name", "inverse_type_name").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to update relation type", logger.Error(err), slog.String("id", t.ID))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) DeleteType(ctx context.Context, db bun.IDB, id string) error {
	if _, err := db.NewDelete().Model((*catalog.AlgorithmRelationType)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		r.log.Error("failed to delete relation type", logger.Error(err), slog.String("id", id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// CountByType counts the relations of a type.
func (r *Repository) CountByType(ctx context.Context, db bun.IDB, typeID string) (int, error) {
	n, err := db.NewSelect().Model((*catalog.AlgorithmRelation)(nil)).
		Where("algorithm_relation_type_id = ?", typeID).
		Count(ctx)
	if err != nil {
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	return n, nil
}

// --- Relations ---

// involving limits a relation query to those with the algorithm on either end.
func involving(algorithmID string) catalog.Scope {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("ar.source_algorithm_id = ?", algorithmID).
				WhereOr("ar.target_algorithm_id = ?", algorithmID)
		})
	}
}

// ListByAlgorithm returns relations where the algorithm is source or target.
func (r *Repository) ListByAlgorithm(ctx context.Context, algorithmID string, req paging.Request) (paging.Page[catalog.AlgorithmRelation], error) {
	page, err := catalog.List[catalog.AlgorithmRelation](ctx, r.db, req, "ar", "id",
		involving(algorithmID),
		catalog.Search("ar", req.Search, "description"),
		func(q *bun.SelectQuery) *bun.SelectQuery { return q.Relation("AlgorithmRelationType") })
	if err != nil {
		r.log.Error("failed to list algorithm relations", logger.Error(err), slog.String("algorithm_id", algorithmID))
	}
	return page, err
}

// Get returns (nil, nil) when the relation does not exist.
func (r *Repository) Get(ctx context.Context, db bun.IDB, id string) (*catalog.AlgorithmRelation, error) {
	rel := &catalog.AlgorithmRelation{}
	err := db.NewSelect().Model(rel).Relation("AlgorithmRelationType").Where("ar.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get algorithm relation", logger.Error(err), slog.String("id", id))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return rel, nil
}

func (r *Repository) Insert(ctx context.Context, db bun.IDB, rel *catalog.AlgorithmRelation) error {
	if _, err := db.NewInsert().Model(rel).Returning("id, created_at, updated_at").Exec(ctx); err != nil {
		r.log.Error("failed to create algorithm relation", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, db bun.IDB, rel *catalog.AlgorithmRelation) error {
	_, err := db.NewUpdate().Model(rel).
		Column("source_algorithm_id", "target_algorithm_id", "algorithm_relation_type_id", "description").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to update algorithm relation", logger.Error(err), slog.String("id", rel.ID))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, db bun.IDB, id string) error {
	if _, err := db.NewDelete().Model((*catalog.AlgorithmRelation)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		r.log.Error("failed to delete algorithm relation", logger.Error(err), slog.String("id", id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// DeleteByAlgorithm removes every relation with the algorithm on either end.
func (r *Repository) DeleteByAlgorithm(ctx context.Context, db bun.IDB, algorithmID string) (int64, error) {
	res, err := db.NewDelete().Model((*catalog.AlgorithmRelation)(nil)).
		Where("source_algorithm_id = ?", algorithmID).
		WhereOr("target_algorithm_id = ?", algorithmID).
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to delete algorithm relations", logger.Error(err), slog.String("algorithm_id", algorithmID))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
