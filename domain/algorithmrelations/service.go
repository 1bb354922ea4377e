package algorithmrelations

import (
	"context"
	"fmt"
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

// Service handles business logic for algorithm relations and relation types
type Service struct {
	db   bun.IDB
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new algorithm relation service
func NewService(db bun.IDB, repo *Repository, log *slog.Logger) *Service {
	return &Service{db: db, repo: repo, log: log.With(logger.Scope("algorithmrelations.svc"))}
}

// --- Relation types ---

func (s *Service) ListTypes(ctx context.Context, req paging.Request) (paging.Page[catalog.AlgorithmRelationType], error) {
	return s.repo.ListTypes(ctx, req)
}

func (s *Service) GetType(ctx context.Context, id string) (*catalog.AlgorithmRelationType, error) {
	return s.repo.GetType(ctx, s.db, id)
}

// CreateType creates a relation type, or returns the existing type with the
// same name. The flag reports whether a new type was created.
func (s *Service) CreateType(ctx context.Context, req RelationTypeRequest) (*catalog.AlgorithmRelationType, bool, error) {
	var (
		t       *catalog.AlgorithmRelationType
		created bool
	)
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		t, created, err = s.findOrCreateType(ctx, tx, req.Name, req.InverseTypeName)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return t, created, nil
}

func (s *Service) UpdateType(ctx context.Context, id string, req RelationTypeRequest) (*catalog.AlgorithmRelationType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.NewValidation("name", "name is required")
	}
	var t *catalog.AlgorithmRelationType
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
			return apperror.NewConsistency(fmt.Sprintf("AlgorithmRelationType with name %q already exists", name))
		}
		t.Name = name
		t.InverseTypeName = strings.TrimSpace(req.InverseTypeName)
		return s.repo.UpdateType(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteType removes a relation type no relation uses.
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
				"AlgorithmRelationType with ID %q cannot be deleted, because it is still used by %d algorithm relations", id, n))
		}
		if err := s.repo.DeleteType(ctx, tx, id); err != nil {
			return err
		}
		metrics.Deleted("algorithm_relation_type", 1)
		return nil
	})
}

func (s *Service) findOrCreateType(ctx context.Context, tx bun.IDB, name, inverse string) (*catalog.AlgorithmRelationType, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperror.NewValidation("name", "name is required")
	}
	t := &catalog.AlgorithmRelationType{Name: name, InverseTypeName: strings.TrimSpace(inverse)}
	created, err := s.repo.InsertType(ctx, tx, t)
	if err != nil {
		return nil, false, err
	}
	found, err := s.repo.FindTypeByName(ctx, tx, name)
	if err != nil {
		return nil, false, err
	}
	if found == nil {
		return nil, false, apperror.NewInternal("relation type vanished after insert", nil)
	}
	if created {
		s.log.Info("algorithm relation type created", slog.String("id", found.ID), slog.String("name", name))
	}
	return found, created, nil
}

// resolveType loads the referenced type by id, or finds or creates it by name.
func (s *Service) resolveType(ctx context.Context, tx bun.IDB, ref *RelationTypeRef) (*catalog.AlgorithmRelationType, error) {
	if ref == nil {
		return nil, apperror.NewValidation("algoRelationType", "algoRelationType is required")
	}
	if ref.ID != nil {
		if err := catalog.ValidateID("algoRelationType.id", *ref.ID); err != nil {
			return nil, err
		}
		return s.repo.GetType(ctx, tx, *ref.ID)
	}
	t, _, err := s.findOrCreateType(ctx, tx, ref.Name, ref.InverseTypeName)
	return t, err
}

// --- Relations ---

// ValidateBody checks that the algorithm addressed by the path is one end of the relation.
func ValidateBody(algorithmID string, req RelationRequest) error {
	if req.SourceAlgorithmID != algorithmID && req.TargetAlgorithmID != algorithmID {
		return apperror.NewBadRequest(fmt.Sprintf(
			"AlgorithmId %q does not match any Ids of the AlgorithmRelation request body", algorithmID))
	}
	if err := catalog.ValidateID("sourceAlgorithmId", req.SourceAlgorithmID); err != nil {
		return err
	}
	return catalog.ValidateID("targetAlgorithmId", req.TargetAlgorithmID)
}

// relation loads a relation and checks that the algorithm is one of its ends.
func (s *Service) relation(ctx context.Context, db bun.IDB, algorithmID, id string) (*catalog.AlgorithmRelation, error) {
	if err := catalog.RequireAlgorithm(ctx, db, algorithmID); err != nil {
		return nil, err
	}
	rel, err := s.repo.Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, apperror.NewNotFound("AlgorithmRelation", id)
	}
	if rel.SourceAlgorithmID != algorithmID && rel.TargetAlgorithmID != algorithmID {
		return nil, apperror.NewNotLinked("AlgorithmRelation", id, "Algorithm", algorithmID)
	}
	return rel, nil
}

func (s *Service) ListByAlgorithm(ctx context.Context, algorithmID string, req paging.Request) (paging.Page[catalog.AlgorithmRelation], error) {
	if err := catalog.RequireAlgorithm(ctx, s.db, algorithmID); err != nil {
		return paging.Page[catalog.AlgorithmRelation]{}, err
	}
	return s.repo.ListByAlgorithm(ctx, algorithmID, req)
}

func (s *Service) Get(ctx context.Context, algorithmID, id string) (*catalog.AlgorithmRelation, error) {
	return s.relation(ctx, s.db, algorithmID, id)
}

// Create adds a relation between two existing algorithms.
func (s *Service) Create(ctx context.Context, algorithmID string, req RelationRequest) (*catalog.AlgorithmRelation, error) {
	if err := ValidateBody(algorithmID, req); err != nil {
		return nil, err
	}
	rel := &catalog.AlgorithmRelation{}
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := s.apply(ctx, tx, rel, req); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, rel)
	})
	if err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *Service) Update(ctx context.Context, algorithmID, id string, req RelationRequest) (*catalog.AlgorithmRelation, error) {
	if err := ValidateBody(algorithmID, req); err != nil {
		return nil, err
	}
	var rel *catalog.AlgorithmRelation
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
		metrics.Deleted("algorithm_relation", 1)
		return nil
	})
}

func (s *Service) apply(ctx context.Context, tx bun.IDB, rel *catalog.AlgorithmRelation, req RelationRequest) error {
	if err := catalog.RequireAlgorithm(ctx, tx, req.SourceAlgorithmID); err != nil {
		return err
	}
	if err := catalog.RequireAlgorithm(ctx, tx, req.TargetAlgorithmID); err != nil {
		return err
	}
	t, err := s.resolveType(ctx, tx, req.AlgoRelationType)
	if err != nil {
		return err
	}
	rel.SourceAlgorithmID = req.SourceAlgorithmID
	rel.TargetAlgorithmID = req.TargetAlgorithmID
	rel.AlgorithmRelationTypeID = t.ID
	rel.AlgorithmRelationType = t
	rel.Description = req.Description
	return nil
}
