package algorithms

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Repository handles database operations for algorithms
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new algorithm repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("algorithms.repo")),
	}
}

// List returns algorithms whose name or acronym matches the search.
func (r *Repository) List(ctx context.Context, req paging.Request) (paging.Page[catalog.Algorithm], error) {
	page, err := catalog.List[catalog.Algorithm](ctx, r.db, req, "alg", "id",
		catalog.Search("alg", req.Search, "name", "acronym"))
	if err != nil {
		r.log.Error("failed to list algorithms", logger.Error(err))
	}
	return page, err
}

func (r *Repository) Get(ctx context.Context, db bun.IDB, id string) (*catalog.Algorithm, error) {
	a := &catalog.Algorithm{}
	if err := catalog.Get(ctx, db, a, "Algorithm", id); err != nil {
		return nil, err
	}
	return a, nil
}

// Insert stores a. Its id must already exist as a knowledge artifact.
func (r *Repository) Insert(ctx context.Context, db bun.IDB, a *catalog.Algorithm) error {
	if _, err := db.NewInsert().Model(a).Returning("created_at, updated_at").Exec(ctx); err != nil {
		r.log.Error("failed to create algorithm", logger.Error(err), slog.String("name", a.Name))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, db bun.IDB, a *catalog.Algorithm) error {
	_, err := db.NewUpdate().Model(a).
		Column("name", "acronym", "intent", "problem", "input_format", "algo_parameter",
			"output_format", "solution", "assumptions", "computation_model",
			"nisq_ready", "quantum_computation_model", "speed_up").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to update algorithm", logger.Error(err), slog.String("id", a.ID))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, db bun.IDB, id string) error {
	if _, err := db.NewDelete().Model((*catalog.Algorithm)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		r.log.Error("failed to delete algorithm", logger.Error(err), slog.String("id", id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Publications(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Publication], error) {
	return catalog.List[catalog.Publication](ctx, r.db, req, "pub", "id",
		catalog.AlgorithmPublications.Rights("pub", "id", id),
		catalog.Search("pub", req.Search, "title"))
}

func (r *Repository) ProblemTypes(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.ProblemType], error) {
	return catalog.List[catalog.ProblemType](ctx, r.db, req, "pt", "id",
		catalog.AlgorithmProblemTypes.Rights("pt", "id", id),
		catalog.Search("pt", req.Search, "name"))
}

func (r *Repository) ApplicationAreas(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.ApplicationArea], error) {
	return catalog.List[catalog.ApplicationArea](ctx, r.db, req, "aa", "id",
		catalog.AlgorithmApplicationAreas.Rights("aa", "id", id),
		catalog.Search("aa", req.Search, "name"))
}
