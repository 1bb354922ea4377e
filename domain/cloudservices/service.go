// Package cloudservices manages cloud offerings and the compute resources
// they give access to.
package cloudservices

import (
	"context"
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

// CloudServiceRequest is the body for creating or updating a cloud service
type CloudServiceRequest struct {
	Name        string `json:"name"`
	Provider    string `json:"provider,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	CostModel   string `json:"costModel,omitempty"`
}

func (req CloudServiceRequest) apply(cs *catalog.CloudService) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperror.NewValidation("name", "name is required")
	}
	link := strings.TrimSpace(req.URL)
	if link != "" {
		if u, err := url.Parse(link); err != nil || !u.IsAbs() {
			return apperror.NewValidation("url", "url must be an absolute URL")
		}
	}
	cs.Name = name
	cs.Provider = strings.TrimSpace(req.Provider)
	cs.URL = link
	cs.Description = req.Description
	cs.CostModel = strings.TrimSpace(req.CostModel)
	return nil
}

// Service handles business logic for cloud services
type Service struct {
	db  bun.IDB
	log *slog.Logger
}

// NewService creates a new cloud service service
func NewService(db bun.IDB, log *slog.Logger) *Service {
	return &Service{db: db, log: log.With(logger.Scope("cloudservices.svc"))}
}

func (s *Service) List(ctx context.Context, req paging.Request) (paging.Page[catalog.CloudService], error) {
	page, err := catalog.List[catalog.CloudService](ctx, s.db, req, "cs", "id",
		catalog.Search("cs", req.Search, "name", "provider"))
	if err != nil {
		s.log.Error("failed to list cloud services", logger.Error(err))
	}
	return page, err
}

func (s *Service) Get(ctx context.Context, id string) (*catalog.CloudService, error) {
	return s.get(ctx, s.db, id)
}

func (s *Service) get(ctx context.Context, db bun.IDB, id string) (*catalog.CloudService, error) {
	cs := &catalog.CloudService{}
	if err := catalog.Get(ctx, db, cs, "CloudService", id); err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *Service) Create(ctx context.Context, req CloudServiceRequest) (*catalog.CloudService, error) {
	cs := &catalog.CloudService{}
	if err := req.apply(cs); err != nil {
		return nil, err
	}
	if _, err := s.db.NewInsert().Model(cs).Returning("*").Exec(ctx); err != nil {
		s.log.Error("failed to create cloud service", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return cs, nil
}

func (s *Service) Update(ctx context.Context, id string, req CloudServiceRequest) (*catalog.CloudService, error) {
	var cs *catalog.CloudService
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if cs, err = s.get(ctx, tx, id); err != nil {
			return err
		}
		if err := req.apply(cs); err != nil {
			return err
		}
		_, err = tx.NewUpdate().Model(cs).
			Column("name", "provider", "url", "description", "cost_model").
			Set("updated_at = now()").
			WherePK().
			Returning("updated_at").
			Exec(ctx)
		if err != nil {
			s.log.Error("failed to update cloud service", logger.Error(err), slog.String("id", id))
			return apperror.ErrDatabase.WithInternal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// Delete unlinks the service from software platforms and compute resources and removes it.
func (s *Service) Delete(ctx context.Context, id string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := catalog.RequireCloudService(ctx, tx, id); err != nil {
			return err
		}
		if err := catalog.SoftwarePlatformCloudServices.DeleteByRight(ctx, tx, id); err != nil {
			return err
		}
		if err := catalog.CloudServiceComputeResources.DeleteByLeft(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*catalog.CloudService)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			s.log.Error("failed to delete cloud service", logger.Error(err), slog.String("id", id))
			return apperror.ErrDatabase.WithInternal(err)
		}
		metrics.Deleted("cloud_service", 1)
		return nil
	})
}

func (s *Service) SoftwarePlatforms(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.SoftwarePlatform], error) {
	if err := catalog.RequireCloudService(ctx, s.db, id); err != nil {
		return paging.Page[catalog.SoftwarePlatform]{}, err
	}
	return catalog.List[catalog.SoftwarePlatform](ctx, s.db, req, "sp", "id",
		catalog.SoftwarePlatformCloudServices.Lefts("sp", "id", id))
}

func (s *Service) ComputeResources(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.ComputeResource], error) {
	if err := catalog.RequireCloudService(ctx, s.db, id); err != nil {
		return paging.Page[catalog.ComputeResource]{}, err
	}
	return catalog.List[catalog.ComputeResource](ctx, s.db, req, "cr", "id",
		catalog.CloudServiceComputeResources.Rights("cr", "id", id))
}

// ComputeResource returns a compute resource linked to the service.
func (s *Service) ComputeResource(ctx context.Context, id, resourceID string) (*catalog.ComputeResource, error) {
	if err := catalog.CloudServiceComputeResources.Linked(ctx, s.db, id, resourceID); err != nil {
		return nil, err
	}
	cr := &catalog.ComputeResource{}
	if err := catalog.Get(ctx, s.db, cr, "ComputeResource", resourceID); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *Service) LinkComputeResource(ctx context.Context, id, resourceID string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		return catalog.CloudServiceComputeResources.Connect(ctx, tx, id, resourceID)
	})
}

func (s *Service) UnlinkComputeResource(ctx context.Context, id, resourceID string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		return catalog.CloudServiceComputeResources.Disconnect(ctx, tx, id, resourceID)
	})
}
