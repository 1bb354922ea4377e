package publications

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Repository handles database operations for publications
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new publication repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log.With(logger.Scope("publications.repo"))}
}

func (r *Repository) List(ctx context.Context, req paging.Request) (paging.Page[catalog.Publication], error) {
	page, err := catalog.List[catalog.Publication](ctx, r.db, req, "pub", "id",
		catalog.Search("pub", req.Search, "title", "doi"))
	if err != nil {
		r.log.Error("failed to list publications", logger.Error(err))
	}
	return page, err
}

func (r *Repository) Get(ctx context.Context, db bun.IDB, id string) (*catalog.Publication, error) {
	p := &catalog.Publication{}
	if err := catalog.Get(ctx, db, p, "Publication", id); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) Insert(ctx context.Context, db bun.IDB, p *catalog.Publication) error {
	if _, err := db.NewInsert().Model(p).Returning("created_at, updated_at").Exec(ctx); err != nil {
		r.log.Error("failed to create publication", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, db bun.IDB, p *catalog.Publication) error {
	_, err := db.NewUpdate().Model(p).
		Column("title", "url", "doi", "authors").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to update publication", logger.Error(err), slog.String("id", p.ID))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, db bun.IDB, id string) error {
	if _, err := db.NewDelete().Model((*catalog.Publication)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		r.log.Error("failed to delete publication", logger.Error(err), slog.String("id", id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// Algorithms returns the algorithms citing the publication.
func (r *Repository) Algorithms(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Algorithm], error) {
	return catalog.List[catalog.Algorithm](ctx, r.db, req, "alg", "id",
		catalog.AlgorithmPublications.Lefts("alg", "id", id))
}

// Implementations returns the implementations citing the publication.
func (r *Repository) Implementations(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Implementation], error) {
	return catalog.List[catalog.Implementation](ctx, r.db, req, "impl", "id",
		catalog.ImplementationPublications.Lefts("impl", "id", id))
}
