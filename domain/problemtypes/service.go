package problemtypes

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

// ProblemTypeRequest is the body for creating or updating a problem type
type ProblemTypeRequest struct {
	Name                string  `json:"name"`
	ParentProblemTypeID *string `json:"parentProblemTypeId,omitempty"`
}

// Service handles business logic for problem types
type Service struct {
	db   bun.IDB
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new problem type service
func NewService(db bun.IDB, repo *Repository, log *slog.Logger) *Service {
	return &Service{db: db, repo: repo, log: log.With(logger.Scope("problemtypes.svc"))}
}

func (s *Service) List(ctx context.Context, req paging.Request) (paging.Page[catalog.ProblemType], error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id string) (*catalog.ProblemType, error) {
	return s.repo.Get(ctx, s.db, id)
}

func (s *Service) Create(ctx context.Context, req ProblemTypeRequest) (*catalog.ProblemType, error) {
	pt := &catalog.ProblemType{}
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := s.apply(ctx, tx, pt, req); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, pt)
	})
	if err != nil {
		return nil, err
	}
	return pt, nil
}

func (s *Service) Update(ctx context.Context, id string, req ProblemTypeRequest) (*catalog.ProblemType, error) {
	var pt *catalog.ProblemType
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if pt, err = s.repo.Get(ctx, tx, id); err != nil {
			return err
		}
		if err := s.apply(ctx, tx, pt, req); err != nil {
			return err
		}
		return s.repo.Update(ctx, tx, pt)
	})
	if err != nil {
		return nil, err
	}
	return pt, nil
}

// Delete unlinks the problem type from its algorithms and detaches its children.
func (s *Service) Delete(ctx context.Context, id string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if _, err := s.repo.Get(ctx, tx, id); err != nil {
			return err
		}
		if err := catalog.AlgorithmProblemTypes.DeleteByRight(ctx, tx, id); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}
		metrics.Deleted("problem_type", 1)
		return nil
	})
}

// ParentList returns the problem type followed by its ancestors up to the root.
func (s *Service) ParentList(ctx context.Context, id string) ([]catalog.ProblemType, error) {
	if err := catalog.RequireProblemType(ctx, s.db, id); err != nil {
		return nil, err
	}
	return s.repo.Ancestors(ctx, id)
}

func (s *Service) Algorithms(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Algorithm], error) {
	if err := catalog.RequireProblemType(ctx, s.db, id); err != nil {
		return paging.Page[catalog.Algorithm]{}, err
	}
	return s.repo.Algorithms(ctx, id, req)
}

func (s *Service) apply(ctx context.Context, tx bun.IDB, pt *catalog.ProblemType, req ProblemTypeRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperror.NewValidation("name", "name is required")
	}
	if parent := req.ParentProblemTypeID; parent != nil {
		if err := catalog.ValidateID("parentProblemTypeId", *parent); err != nil {
			return err
		}
		if pt.ID != "" && *parent == pt.ID {
			return apperror.NewValidation("parentProblemTypeId", "a problem type cannot be its own parent")
		}
		if err := catalog.RequireProblemType(ctx, tx, *parent); err != nil {
			return err
		}
	}
	pt.Name = name
	pt.ParentProblemTypeID = req.ParentProblemTypeID
	return nil
}
