package softwareplatforms

import (
	"context"
	"log/slog"
	"net/url"
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

// SoftwarePlatformRequest is the body for creating or updating a software platform
type SoftwarePlatformRequest struct {
	Name    string `json:"name"`
	Link    string `json:"link,omitempty"`
	Licence string `json:"licence,omitempty"`
	Version string `json:"version,omitempty"`
}

func (req SoftwarePlatformRequest) apply(sp *catalog.SoftwarePlatform) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperror.NewValidation("name", "name is required")
	}
	link := strings.TrimSpace(req.Link)
	if link != "" {
		if u, err := url.Parse(link); err != nil || !u.IsAbs() {
			return apperror.NewValidation("link", "link must be an absolute URL")
		}
	}
	sp.Name = name
	sp.Link = link
	sp.Licence = strings.TrimSpace(req.Licence)
	sp.Version = strings.TrimSpace(req.Version)
	return nil
}

// Service handles business logic for software platforms
type Service struct {
	db  bun.IDB
	log *slog.Logger
}

// NewService creates a new software platform service
func NewService(db bun.IDB, log *slog.Logger) *Service {
	return &Service{db: db, log: log.With(logger.Scope("softwareplatforms.svc"))}
}

// List returns software platforms. The search matches names case-insensitively.
func (s *Service) List(ctx context.Context, req paging.Request) (paging.Page[catalog.SoftwarePlatform], error) {
	page, err := catalog.List[catalog.SoftwarePlatform](ctx, s.db, req, "sp", "id",
		catalog.Search("sp", req.Search, "name"))
	if err != nil {
		s.log.Error("failed to list software platforms", logger.Error(err))
	}
	return page, err
}

func (s *Service) Get(ctx context.Context, id string) (*catalog.SoftwarePlatform, error) {
	return s.get(ctx, s.db, id)
}

func (s *Service) get(ctx context.Context, db bun.IDB, id string) (*catalog.SoftwarePlatform, error) {
	sp := &catalog.SoftwarePlatform{}
	if err := catalog.Get(ctx, db, sp, "SoftwarePlatform", id); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *Service) Create(ctx context.Context, req SoftwarePlatformRequest) (*catalog.SoftwarePlatform, error) {
	sp := &catalog.SoftwarePlatform{}
	if err := req.apply(sp); err != nil {
		return nil, err
	}
	if _, err := s.db.NewInsert().Model(sp).Returning("*").Exec(ctx); err != nil {
		s.log.Error("failed to create software platform", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	s.log.Info("software platform created", slog.String("id", sp.ID), slog.String("name", sp.Name))
	return sp, nil
}

// Update sets name, link, licence and version.
func (s *Service) Update(ctx context.Context, id string, req SoftwarePlatformRequest) (*catalog.SoftwarePlatform, error) {
	var sp *catalog.SoftwarePlatform
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if sp, err = s.get(ctx, tx, id); err != nil {
			return err
		}
		if err := req.apply(sp); err != nil {
			return err
		}
		_, err = tx.NewUpdate().Model(sp).
			Column("name", "link", "licence", "version").
			Set("updated_at = now()").
			WherePK().
			Returning("updated_at").
			Exec(ctx)
		if err != nil {
			s.log.Error("failed to update software platform", logger.Error(err), slog.String("id", id))
			return apperror.ErrDatabase.WithInternal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sp, nil
}

// Delete removes the platform after dropping its references from
// implementations, cloud services and compute resources.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.Start(ctx, "softwareplatforms.delete", attribute.String("atlas.software_platform.id", id))
	defer span.End()

	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := catalog.RequireSoftwarePlatform(ctx, tx, id); err != nil {
			return err
		}
		if err := catalog.ImplementationSoftwarePlatforms.DeleteByRight(ctx, tx, id); err != nil {
			return err
		}
		if err := catalog.SoftwarePlatformCloudServices.DeleteByLeft(ctx, tx, id); err != nil {
			return err
		}
		if err := catalog.SoftwarePlatformComputeResources.DeleteByLeft(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*catalog.SoftwarePlatform)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			s.log.Error("failed to delete software platform", logger.Error(err), slog.String("id", id))
			return apperror.ErrDatabase.WithInternal(err)
		}
		return nil
	})
	if err != nil {
		return tracing.Fail(span, err)
	}
	metrics.Deleted("software_platform", 1)
	return nil
}

// --- Linked entities ---

func (s *Service) Implementations(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Implementation], error) {
	if err := catalog.RequireSoftwarePlatform(ctx, s.db, id); err != nil {
		return paging.Page[catalog.Implementation]{}, err
	}
	return catalog.List[catalog.Implementation](ctx, s.db, req, "impl", "id",
		catalog.ImplementationSoftwarePlatforms.Lefts("impl", "id", id))
}

func (s *Service) CloudServices(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.CloudService], error) {
	if err := catalog.RequireSoftwarePlatform(ctx, s.db, id); err != nil {
		return paging.Page[catalog.CloudService]{}, err
	}
	return catalog.List[catalog.CloudService](ctx, s.db, req, "cs", "id",
		catalog.SoftwarePlatformCloudServices.Rights("cs", "id", id))
}

func (s *Service) ComputeResources(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.ComputeResource], error) {
	if err := catalog.RequireSoftwarePlatform(ctx, s.db, id); err != nil {
		return paging.Page[catalog.ComputeResource]{}, err
	}
	return catalog.List[catalog.ComputeResource](ctx, s.db, req, "cr", "id",
		catalog.SoftwarePlatformComputeResources.Rights("cr", "id", id))
}

// CloudService returns a cloud service linked to the platform.
func (s *Service) CloudService(ctx context.Context, id, serviceID string) (*catalog.CloudService, error) {
	if err := catalog.SoftwarePlatformCloudServices.Linked(ctx, s.db, id, serviceID); err != nil {
		return nil, err
	}
	cs := &catalog.CloudService{}
	if err := catalog.Get(ctx, s.db, cs, "CloudService", serviceID); err != nil {
		return nil, err
	}
	return cs, nil
}

// ComputeResource returns a compute resource linked to the platform.
func (s *Service) ComputeResource(ctx context.Context, id, resourceID string) (*catalog.ComputeResource, error) {
	if err := catalog.SoftwarePlatformComputeResources.Linked(ctx, s.db, id, resourceID); err != nil {
		return nil, err
	}
	cr := &catalog.ComputeResource{}
	if err := catalog.Get(ctx, s.db, cr, "ComputeResource", resourceID); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *Service) LinkCloudService(ctx context.Context, id, serviceID string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		return catalog.SoftwarePlatformCloudServices.Connect(ctx, tx, id, serviceID)
	})
}

func (s *Service) UnlinkCloudService(ctx context.Context, id, serviceID string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		return catalog.SoftwarePlatformCloudServices.Disconnect(ctx, tx, id, serviceID)
	})
}

func (s *Service) LinkComputeResource(ctx context.Context, id, resourceID string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		return catalog.SoftwarePlatformComputeResources.Connect(ctx, tx, id, resourceID)
	})
}

func (s *Service) UnlinkComputeResource(ctx context.Context, id, resourceID string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		return catalog.SoftwarePlatformComputeResources.Disconnect(ctx, tx, id, resourceID)
	})
}
