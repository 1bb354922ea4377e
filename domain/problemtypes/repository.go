package problemtypes

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Repository handles database operations for problem types
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new problem type repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log.With(logger.Scope("problemtypes.repo"))}
}

func (r *Repository) List(ctx context.Context, req paging.Request) (paging.Page[catalog.ProblemType], error) {
	page, err := catalog.List[catalog.ProblemType](ctx, r.db, req, "pt", "id",
		catalog.Search("pt", req.Search, "name"))
	if err != nil {
		r.log.Error("failed to list problem types", logger.Error(err))
	}
	return page, err
}

func (r *Repository) Get(ctx context.Context, db bun.IDB, id string) (*catalog.ProblemType, error) {
	pt := &catalog.ProblemType{}
	if err := catalog.Get(ctx, db, pt, "ProblemType", id); err != nil {
		return nil, err
	}
	return pt, nil
}

func (r *Repository) Insert(ctx context.Context, db bun.IDB, pt *catalog.ProblemType) error {
	if _, err := db.NewInsert().Model(pt).Returning("*").Exec(ctx); err != nil {
		r.log.Error("failed to create problem type", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, db bun.IDB, pt *catalog.ProblemType) error {
	_, err := db.NewUpdate().Model(pt).
		Column("name", "parent_problem_type_id").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to update problem type", logger.Error(err), slog.String("id", pt.ID))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// Delete removes the problem type. Its children become roots.
func (r *Repository) Delete(ctx context.Context, db bun.IDB, id string) error {
	_, err := db.NewUpdate().Model((*catalog.ProblemType)(nil)).
		Set("parent_problem_type_id = NULL").
		Set("updated_at = now()").
		Where("parent_problem_type_id = ?", id).
		Exec(ctx)
	if err == nil {
		_, err = db.NewDelete().Model((*catalog.ProblemType)(nil)).Where("id = ?", id).Exec(ctx)
	}
	if err != nil {
		r.log.Error("failed to delete problem type", logger.Error(err), slog.String("id", id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// Ancestors returns id and its ancestors, nearest first. The recursive walk
// stops when it reaches a node it has already visited.
func (r *Repository) Ancestors(ctx context.Context, id string) ([]catalog.ProblemType, error) {
	var chain []catalog.ProblemType
	err := r.db.NewRaw(`
		WITH RECURSIVE chain AS (
		    SELECT pt.*, 0 AS depth, ARRAY[pt.id] AS path
		    FROM atlas.problem_types AS pt
		    WHERE pt.id = ?
		  UNION ALL
		    SELECT parent.*, chain.depth + 1, chain.path || parent.id
		    FROM atlas.problem_types AS parent
		    JOIN chain ON parent.id = chain.parent_problem_type_id
		    WHERE NOT parent.id = ANY(chain.path)
		)
		SELECT id, name, parent_problem_type_id, created_at, updated_at
		FROM chain
		ORDER BY depth`, id).Scan(ctx, &chain)
	if err != nil {
		r.log.Error("failed to walk problem type parents", logger.Error(err), slog.String("id", id))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return chain, nil
}

func (r *Repository) Algorithms(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Algorithm], error) {
	return catalog.List[catalog.Algorithm](ctx, r.db, req, "alg", "id",
		catalog.AlgorithmProblemTypes.Lefts("alg", "id", id))
}
