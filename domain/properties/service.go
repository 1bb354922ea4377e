package properties

import (
	"context"
	"log/slog"
	"strings"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
	"github.com/emergent-company/atlas/pkg/paging"
	"github.com/emergent-company/atlas/pkg/tracing"
)

var (
	errCustomID    = apperror.ErrNotFound.WithMessage("The use of Custom Ids is not allowed!")
	errNoProperty  = apperror.ErrNotFound.WithMessage("Cannot find ComputeResourceProperty with the given ID")
	errNotFound    = apperror.ErrNotFound.WithMessage("Element not found!")
	errTypeMissing = apperror.NewValidation("type", "type is required")
)

// Service handles business logic for compute resource properties
type Service struct {
	db   bun.IDB
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new property service
func NewService(db bun.IDB, repo *Repository, log *slog.Logger) *Service {
	return &Service{
		db:   db,
		repo: repo,
		log:  log.With(logger.Scope("properties.svc")),
	}
}

// --- Property types ---

func (s *Service) ListTypes(ctx context.Context, req paging.Request) (paging.Page[catalog.ComputeResourcePropertyType], error) {
	return s.repo.ListTypes(ctx, req)
}

func (s *Service) GetType(ctx context.Context, id string) (*catalog.ComputeResourcePropertyType, error) {
	return s.repo.GetType(ctx, s.db, id)
}

// CreateType creates a property type.
func (s *Service) CreateType(ctx context.Context, req PropertyTypeRequest) (*catalog.ComputeResourcePropertyType, error) {
	if err := validateType(req); err != nil {
		return nil, err
	}
	t := &catalog.ComputeResourcePropertyType{
		Name:        strings.TrimSpace(req.Name),
		Datatype:    req.Datatype,
		Description: req.Description,
	}
	if err := s.repo.CreateType(ctx, s.db, t); err != nil {
		return nil, err
	}
	s.log.Info("property type created", slog.String("id", t.ID), slog.String("name", t.Name))
	return t, nil
}

// UpdateType replaces name, datatype and description of a property type.
func (s *Service) UpdateType(ctx context.Context, id string, req PropertyTypeRequest) (*catalog.ComputeResourcePropertyType, error) {
	if err := validateType(req); err != nil {
		return nil, err
	}
	var t *catalog.ComputeResourcePropertyType
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if t, err = s.repo.GetType(ctx, tx, id); err != nil {
			return err
		}
		t.Name = strings.TrimSpace(req.Name)
		t.Datatype = req.Datatype
		t.Description = req.Description
		return s.repo.UpdateType(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteType removes a property type that no property uses.
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
			return apperror.NewConsistency(
				"ComputeResourcePropertyType with ID \"" + id + "\" cannot be deleted, because it is still in use by compute resource properties")
		}
		if err := s.repo.DeleteType(ctx, tx, id); err != nil {
			return err
		}
		metrics.Deleted("compute_resource_property_type", 1)
		return nil
	})
}

// --- Properties of an owner ---

// requireOwner checks that the algorithm, implementation or compute resource exists.
func requireOwner(ctx context.Context, db bun.IDB, o Owner) error {
	switch o.Column {
	case "algorithm_id":
		return catalog.RequireAlgorithm(ctx, db, o.ID)
	case "implementation_id":
		return catalog.RequireImplementation(ctx, db, o.ID)
	default:
		return catalog.RequireComputeResource(ctx, db, o.ID)
	}
}

// ListByOwner returns a page of the owner's properties. The owner must exist.
func (s *Service) ListByOwner(ctx context.Context, o Owner, req paging.Request) (paging.Page[catalog.ComputeResourceProperty], error) {
	if err := requireOwner(ctx, s.db, o); err != nil {
		return paging.Page[catalog.ComputeResourceProperty]{}, err
	}
	return s.repo.ListByOwner(ctx, o, req)
}

// GetForOwner returns a property that belongs to the owner.
func (s *Service) GetForOwner(ctx context.Context, o Owner, id string) (*catalog.ComputeResourceProperty, error) {
	if err := requireOwner(ctx, s.db, o); err != nil {
		return nil, err
	}
	p, err := s.repo.Get(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFound("ComputeResourceProperty", id)
	}
	if !o.owns(p) {
		return nil, apperror.NewNotLinked("ComputeResourceProperty", id, o.Label, o.ID)
	}
	return p, nil
}

// AddToOwner saves the property and attaches it to the owner. A request without
// an id creates a property; a request with the id of an existing property moves
// that property to the owner and overwrites its value and type.
func (s *Service) AddToOwner(ctx context.Context, o Owner, req PropertyRequest) (*catalog.ComputeResourceProperty, error) {
	ctx, span := tracing.Start(ctx, "properties.add",
		attribute.String("atlas.owner", o.Column),
		attribute.String("atlas.owner.id", o.ID),
	)
	defer span.End()

	var p *catalog.ComputeResourceProperty
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := requireOwner(ctx, tx, o); err != nil {
			return err
		}

		existing := false
		if req.ID != nil {
			if err := catalog.ValidateID("id", *req.ID); err != nil {
				return err
			}
			found, err := s.repo.Get(ctx, tx, *req.ID)
			if err != nil {
				return err
			}
			if found == nil {
				return errCustomID
			}
			p, existing = found, true
		} else {
			p = &catalog.ComputeResourceProperty{}
		}

		if err := s.apply(ctx, tx, p, req); err != nil {
			return err
		}
		o.attach(p)

		if existing {
			return s.repo.Update(ctx, tx, p)
		}
		return s.repo.Insert(ctx, tx, p)
	})
	if err != nil {
		return nil, tracing.Fail(span, err)
	}

	s.log.Info("property saved",
		slog.String("id", p.ID),
		slog.String("owner", o.Column),
		slog.String("owner_id", o.ID),
	)
	return p, nil
}

// UpdateForOwner sets value and type of a property of the owner.
func (s *Service) UpdateForOwner(ctx context.Context, o Owner, id string, req PropertyRequest) (*catalog.ComputeResourceProperty, error) {
	var p *catalog.ComputeResourceProperty
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := requireOwner(ctx, tx, o); err != nil {
			return err
		}
		var err error
		if p, err = s.repo.Get(ctx, tx, id); err != nil {
			return err
		}
		if p == nil {
			return errNoProperty
		}
		if !o.owns(p) {
			return apperror.NewNotLinked("ComputeResourceProperty", id, o.Label, o.ID)
		}
		if err := s.apply(ctx, tx, p, req); err != nil {
			return err
		}
		return s.repo.Update(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteForOwner removes a property of the owner.
func (s *Service) DeleteForOwner(ctx context.Context, o Owner, id string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := requireOwner(ctx, tx, o); err != nil {
			return err
		}
		p, err := s.repo.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return errNotFound
		}
		if !o.owns(p) {
			return apperror.NewNotLinked("ComputeResourceProperty", id, o.Label, o.ID)
		}
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}
		metrics.Deleted("compute_resource_property", 1)
		return nil
	})
}

// apply resolves the requested type, creating it when no id is given, and
// stores the value coerced to the type's datatype.
func (s *Service) apply(ctx context.Context, tx bun.IDB, p *catalog.ComputeResourceProperty, req PropertyRequest) error {
	if req.Type == nil {
		return errTypeMissing
	}

	var t *catalog.ComputeResourcePropertyType
	if req.Type.ID != nil {
		if err := catalog.ValidateID("type.id", *req.Type.ID); err != nil {
			return err
		}
		var err error
		if t, err = s.repo.GetType(ctx, tx, *req.Type.ID); err != nil {
			return err
		}
	} else {
		tr := PropertyTypeRequest{Name: req.Type.Name, Datatype: req.Type.Datatype, Description: req.Type.Description}
		if err := validateType(tr); err != nil {
			return err
		}
		t = &catalog.ComputeResourcePropertyType{
			Name:        strings.TrimSpace(tr.Name),
			Datatype:    tr.Datatype,
			Description: tr.Description,
		}
		if err := s.repo.CreateType(ctx, tx, t); err != nil {
			return err
		}
	}

	value, err := CoerceValue(t.Datatype, req.Value)
	if err != nil {
		return err
	}
	p.Value = value
	p.TypeID = t.ID
	p.Type = t
	return nil
}
