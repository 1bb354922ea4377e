// Package applicationareas manages the fields algorithms are applied in.
package applicationareas

import (
	"context"
	"log/slog"
	"strings"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
	"github.com/emergent-company/atlas/pkg/paging"
)

// ApplicationAreaRequest is the body for creating or updating an application area
type ApplicationAreaRequest struct {
	Name string `json:"name"`
}

func (req ApplicationAreaRequest) name() (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", apperror.NewValidation("name", "name is required")
	}
	return name, nil
}

// Service handles application areas. The table is small enough that queries
// live here without a separate repository.
type Service struct {
	db  bun.IDB
	log *slog.Logger
}

// NewService creates a new application area service
func NewService(db bun.IDB, log *slog.Logger) *Service {
	return &Service{db: db, log: log.With(logger.Scope("applicationareas.svc"))}
}

func (s *Service) List(ctx context.Context, req paging.Request) (paging.Page[catalog.ApplicationArea], error) {
	page, err := catalog.List[catalog.ApplicationArea](ctx, s.db, req, "aa", "id",
		catalog.Search("aa", req.Search, "name"))
	if err != nil {
		s.log.Error("failed to list application areas", logger.Error(err))
	}
	return page, err
}

func (s *Service) Get(ctx context.Context, id string) (*catalog.ApplicationArea, error) {
	return s.get(ctx, s.db, id)
}

func (s *Service) get(ctx context.Context, db bun.IDB, id string) (*catalog.ApplicationArea, error) {
	a := &catalog.ApplicationArea{}
	if err := catalog.Get(ctx, db, a, "ApplicationArea", id); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Create(ctx context.Context, req ApplicationAreaRequest) (*catalog.ApplicationArea, error) {
	name, err := req.name()
	if err != nil {
		return nil, err
	}
	a := &catalog.ApplicationArea{Name: name}
	if _, err := s.db.NewInsert().Model(a).Returning("*").Exec(ctx); err != nil {
		s.log.Error("failed to create application area", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id string, req ApplicationAreaRequest) (*catalog.ApplicationArea, error) {
	name, err := req.name()
	if err != nil {
		return nil, err
	}
	var a *catalog.ApplicationArea
	err = database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if a, err = s.get(ctx, tx, id); err != nil {
			return err
		}
		a.Name = name
		_, err = tx.NewUpdate().Model(a).
			Column("name").
			Set("updated_at = now()").
			WherePK().
			Returning("updated_at").
			Exec(ctx)
		if err != nil {
			return apperror.ErrDatabase.WithInternal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Delete unlinks the area from its algorithms and removes it.
func (s *Service) Delete(ctx context.Context, id string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := catalog.RequireApplicationArea(ctx, tx, id); err != nil {
			return err
		}
		if err := catalog.AlgorithmApplicationAreas.DeleteByRight(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*catalog.ApplicationArea)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			s.log.Error("failed to delete application area", logger.Error(err), slog.String("id", id))
			return apperror.ErrDatabase.WithInternal(err)
		}
		metrics.Deleted("application_area", 1)
		return nil
	})
}

func (s *Service) Algorithms(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Algorithm], error) {
	if err := catalog.RequireApplicationArea(ctx, s.db, id); err != nil {
		return paging.Page[catalog.Algorithm]{}, err
	}
	return catalog.List[catalog.Algorithm](ctx, s.db, req, "alg", "id",
		catalog.AlgorithmApplicationAreas.Lefts("alg", "id", id))
}
