package patternrelations

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Service handles business logic for pattern relations and their types
type Service struct {
	db   bun.IDB
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new pattern relation service
func NewService(db bun.IDB, repo *Repository, log *slog.Logger) *Service {
	return &Service{db: db, repo: repo, log: log.With(logger.Scope("patternrelations.svc"))}
}

func (s *Service) ListTypes(ctx context.Context, req paging.Request) (paging.Page[catalog.PatternRelationType], error) {
	return s.repo.ListTypes(ctx, req)
}

func (s *Service) GetType(ctx context.Context, id string) (*catalog.PatternRelationType, error) {
	return s.repo.GetType(ctx, s.db, id)
}

// CreateType returns the existing type when the name is taken.
func (s *Service) CreateType(ctx context.Context, req PatternRelationTypeRequest) (*catalog.PatternRelationType, bool, error) {
	var (
		t       *catalog.PatternRelationType
		created bool
	)
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		t, created, err = s.findOrCreateType(ctx, tx, req.Name)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return t, created, nil
}

func (s *Service) UpdateType(ctx context.Context, id string, req PatternRelationTypeRequest) (*catalog.PatternRelationType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.NewValidation("name", "name is required")
	}
	var t *catalog.PatternRelationType
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if t, err = s.repo.GetType(ctx, tx, id); err != nil {
			return err
		}
		other, err := s.repo.FindTypeByName(ctx, tx, name)
		if err != nil {
			return err
		}
		if other != nil && other.ID != id {
			return apperror.NewConsistency(fmt.Sprintf("PatternRelationType with name %q already exists", name))
		}
		t.Name = name
		return s.repo.UpdateType(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteType(ctx context.Context, id string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if _, err := s.repo.GetType(ctx, tx, id); err != nil {
			return err
		}
		n, err := s.repo.CountByType(ctx, tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperror.NewConsistency(fmt.Sprintf(
				"PatternRelationType with ID %q cannot be deleted, because it is still used by %d pattern relations", id, n))
		}
		if err := s.repo.DeleteType(ctx, tx, id); err != nil {
			return err
		}
		metrics.Deleted("pattern_relation_type", 1)
		return nil
	})
}

func (s *Service) findOrCreateType(ctx context.Context, tx bun.IDB, name string) (*catalog.PatternRelationType, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperror.NewValidation("name", "name is required")
	}
	created, err := s.repo.InsertType(ctx, tx, &catalog.PatternRelationType{Name: name})
	if err != nil {
		return nil, false, err
	}
	t, err := s.repo.FindTypeByName(ctx, tx, name)
	if err != nil {
		return nil, false, err
	}
	if t == nil {
		return nil, false, apperror.NewInternal("pattern relation type vanished after insert", nil)
	}
	return t, created, nil
}

// ValidatePattern accepts absolute URIs only.
func ValidatePattern(pattern string) error {
	u, err := url.Parse(strings.TrimSpace(pattern))
	if err != nil || !u.IsAbs() {
		return apperror.NewValidation("pattern", "pattern must be an absolute URI")
	}
	return nil
}

// CheckAlgorithm verifies that the body addresses the algorithm in the path.
func CheckAlgorithm(algorithmID string, req PatternRelationRequest) error {
	if req.AlgorithmID != algorithmID {
		return apperror.NewBadRequest(fmt.Sprintf(
			"AlgorithmId %q does not match Id of the PatternRelation request body", algorithmID))
	}
	return nil
}

// List returns all pattern relations, or those of one algorithm when algorithmID is set.
func (s *Service) List(ctx context.Context, algorithmID string, req paging.Request) (paging.Page[catalog.PatternRelation], error) {
	if algorithmID != "" {
		if err := catalog.RequireAlgorithm(ctx, s.db, algorithmID); err != nil {
			return paging.Page[catalog.PatternRelation]{}, err
		}
	}
	return s.repo.List(ctx, algorithmID, req)
}

// Get loads a pattern relation. With a non-empty algorithmID the relation must belong to it.
func (s *Service) Get(ctx context.Context, algorithmID, id string) (*catalog.PatternRelation, error) {
	return s.relation(ctx, s.db, algorithmID, id)
}

func (s *Service) relation(ctx context.Context, db bun.IDB, algorithmID, id string) (*catalog.PatternRelation, error) {
	if algorithmID != "" {
		if err := catalog.RequireAlgorithm(ctx, db, algorithmID); err != nil {
			return nil, err
		}
	}
	rel, err := s.repo.Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if algorithmID != "" && rel.AlgorithmID != algorithmID {
		return nil, apperror.NewNotLinked("PatternRelation", id, "Algorithm", algorithmID)
	}
	return rel, nil
}

func (s *Service) Create(ctx context.Context, req PatternRelationRequest) (*catalog.PatternRelation, error) {
	rel := &catalog.PatternRelation{}
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := s.apply(ctx, tx, rel, req); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, rel)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("pattern relation created", slog.String("id", rel.ID), slog.String("algorithm_id", rel.AlgorithmID))
	return rel, nil
}

func (s *Service) Update(ctx context.Context, algorithmID, id string, req PatternRelationRequest) (*catalog.PatternRelation, error) {
	var rel *catalog.PatternRelation
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if rel, err = s.relation(ctx, tx, algorithmID, id); err != nil {
			return err
		}
		if err := s.apply(ctx, tx, rel, req); err != nil {
			return err
		}
		return s.repo.Update(ctx, tx, rel)
	})
	if err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *Service) Delete(ctx context.Context, algorithmID, id string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if _, err := s.relation(ctx, tx, algorithmID, id); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}
		metrics.Deleted("pattern_relation", 1)
		return nil
	})
}

func (s *Service) apply(ctx context.Context, tx bun.IDB, rel *catalog.PatternRelation, req PatternRelationRequest) error {
	if err := catalog.ValidateID("algorithmId", req.AlgorithmID); err != nil {
		return err
	}
	if err := ValidatePattern(req.Pattern); err != nil {
		return err
	}
	if err := catalog.RequireAlgorithm(ctx, tx, req.AlgorithmID); err != nil {
		return err
	}
	ref := req.PatternRelationType
	if ref == nil {
		return apperror.NewValidation("patternRelationType", "patternRelationType is required")
	}
	var (
		t   *catalog.PatternRelationType
		err error
	)
	if ref.ID != nil {
		if err := catalog.ValidateID("patternRelationType.id", *ref.ID); err != nil {
			return err
		}
		t, err = s.repo.GetType(ctx, tx, *ref.ID)
	} else {
		t, _, err = s.findOrCreateType(ctx, tx, ref.Name)
	}
	if err != nil {
		return err
	}
	rel.AlgorithmID = req.AlgorithmID
	rel.Pattern = strings.TrimSpace(req.Pattern)
	rel.PatternRelationTypeID = t.ID
	rel.PatternRelationType = t
	rel.Description = req.Description
	return nil
}
