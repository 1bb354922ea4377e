package implementations

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Repository handles database operations for implementations
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new implementation repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("implementations.repo")),
	}
}

func search(req paging.Request) catalog.Scope {
	return catalog.Search("impl", req.Search, "name", "description", "technology")
}

// List returns implementations, optionally limited to one algorithm.
func (r *Repository) List(ctx context.Context, algorithmID string, req paging.Request) (paging.Page[catalog.Implementation], error) {
	scopes := []catalog.Scope{search(req)}
	if algorithmID != "" {
		scopes = append(scopes, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("impl.implemented_algorithm_id = ?", algorithmID)
		})
	}
	page, err := catalog.List[catalog.Implementation](ctx, r.db, req, "impl", "id", scopes...)
	if err != nil {
		r.log.Error("failed to list implementations", logger.Error(err), slog.String("algorithm_id", algorithmID))
	}
	return page, err
}

func (r *Repository) Get(ctx context.Context, db bun.IDB, id string) (*catalog.Implementation, error) {
	impl := &catalog.Implementation{}
	if err := catalog.Get(ctx, db, impl, "Implementation", id); err != nil {
		return nil, err
	}
	return impl, nil
}

// IDsByAlgorithm returns the ids of every implementation of the algorithm.
func (r *Repository) IDsByAlgorithm(ctx context.Context, db bun.IDB, algorithmID string) ([]string, error) {
	var ids []string
	err := db.NewSelect().
		Model((*catalog.Implementation)(nil)).
		Column("id").
		Where("implemented_algorithm_id = ?", algorithmID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return ids, nil
}

// Insert stores impl. Its id must already exist as a knowledge artifact.
func (r *Repository) Insert(ctx context.Context, db bun.IDB, impl *catalog.Implementation) error {
	if _, err := db.NewInsert().Model(impl).Returning("created_at, updated_at").Exec(ctx); err != nil {
		r.log.Error("failed to create implementation", logger.Error(err), slog.String("name", impl.Name))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, db bun.IDB, impl *catalog.Implementation) error {
	_, err := db.NewUpdate().Model(impl).
		Column("name", "description", "contributors", "assumptions", "parameter",
			"input_format", "output_format", "dependencies", "version", "license",
			"technology", "problem_statement", "sdk_id", "programming_language", "selection_rule").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to update implementation", logger.Error(err), slog.String("id", impl.ID))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, db bun.IDB, id string) error {
	if _, err := db.NewDelete().Model((*catalog.Implementation)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		r.log.Error("failed to delete implementation", logger.Error(err), slog.String("id", id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) SoftwarePlatforms(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.SoftwarePlatform], error) {
	return catalog.List[catalog.SoftwarePlatform](ctx, r.db, req, "sp", "id",
		catalog.ImplementationSoftwarePlatforms.Rights("sp", "id", id),
		catalog.Search("sp", req.Search, "name"))
}

func (r *Repository) Publications(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Publication], error) {
	return catalog.List[catalog.Publication](ctx, r.db, req, "pub", "id",
		catalog.ImplementationPublications.Rights("pub", "id", id),
		catalog.Search("pub", req.Search, "title"))
}
