package computeresources

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/domain/properties"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
	"github.com/emergent-company/atlas/pkg/paging"
)

// ComputeResourceRequest is the body for creating or updating a compute resource
type ComputeResourceRequest struct {
	Name                    string                          `json:"name"`
	Vendor                  string                          `json:"vendor,omitempty"`
	Technology              string                          `json:"technology,omitempty"`
	QuantumComputationModel catalog.QuantumComputationModel `json:"quantumComputationModel,omitempty"`
	NumberOfQubits          *int                            `json:"numberOfQubits,omitempty"`
	// SupportedSdkIDs replaces the SDKs linked to the resource when set.
	SupportedSdkIDs []string `json:"supportedSdkIds,omitempty"`
}

func (req ComputeResourceRequest) apply(cr *catalog.ComputeResource) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperror.NewValidation("name", "name is required")
	}
	if !req.QuantumComputationModel.Valid() {
		return apperror.NewValidation("quantumComputationModel",
			fmt.Sprintf("quantumComputationModel must be one of GATE_BASED, MEASUREMENT_BASED, QUANTUM_ANNEALING, got %q", req.QuantumComputationModel))
	}
	if req.NumberOfQubits != nil && *req.NumberOfQubits < 0 {
		return apperror.NewValidation("numberOfQubits", "numberOfQubits must not be negative")
	}
	for _, id := range req.SupportedSdkIDs {
		if err := catalog.ValidateID("supportedSdkIds", id); err != nil {
			return err
		}
	}
	cr.Name = name
	cr.Vendor = strings.TrimSpace(req.Vendor)
	cr.Technology = strings.TrimSpace(req.Technology)
	cr.QuantumComputationModel = req.QuantumComputationModel
	cr.NumberOfQubits = req.NumberOfQubits
	return nil
}

// linkSdks makes ids the exact set of SDKs supporting the resource. Unknown
// SDKs are a validation error rather than a missing resource.
func linkSdks(ctx context.Context, db bun.IDB, resourceID string, ids []string) error {
	for _, id := range ids {
		exists, err := db.NewSelect().Model((*catalog.Sdk)(nil)).Where("sdk.id = ?", id).Exists(ctx)
		if err != nil {
			return apperror.ErrDatabase.WithInternal(err)
		}
		if !exists {
			return apperror.NewValidation("supportedSdkIds", fmt.Sprintf("Sdk with ID %q does not exist", id))
		}
	}
	if err := catalog.SdkComputeResources.DeleteByRight(ctx, db, resourceID); err != nil {
		return err
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if err := catalog.SdkComputeResources.Link(ctx, db, id, resourceID); err != nil {
			return err
		}
	}
	return nil
}

// Service handles business logic for compute resources
type Service struct {
	db    bun.IDB
	props *properties.Repository
	log   *slog.Logger
}

// NewService creates a new compute resource service
func NewService(db bun.IDB, props *properties.Repository, log *slog.Logger) *Service {
	return &Service{db: db, props: props, log: log.With(logger.Scope("computeresources.svc"))}
}

func (s *Service) List(ctx context.Context, req paging.Request) (paging.Page[catalog.ComputeResource], error) {
	page, err := catalog.List[catalog.ComputeResource](ctx, s.db, req, "cr", "id",
		catalog.Search("cr", req.Search, "name", "vendor"))
	if err != nil {
		s.log.Error("failed to list compute resources", logger.Error(err))
	}
	return page, err
}

func (s *Service) Get(ctx context.Context, id string) (*catalog.ComputeResource, error) {
	return s.get(ctx, s.db, id)
}

func (s *Service) get(ctx context.Context, db bun.IDB, id string) (*catalog.ComputeResource, error) {
	cr := &catalog.ComputeResource{}
	if err := catalog.Get(ctx, db, cr, "ComputeResource", id); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *Service) Create(ctx context.Context, req ComputeResourceRequest) (*catalog.ComputeResource, error) {
	cr := &catalog.ComputeResource{}
	if err := req.apply(cr); err != nil {
		return nil, err
	}
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if _, err := tx.NewInsert().Model(cr).Returning("*").Exec(ctx); err != nil {
			s.log.Error("failed to create compute resource", logger.Error(err))
			return apperror.ErrDatabase.WithInternal(err)
		}
		return linkSdks(ctx, tx, cr.ID, req.SupportedSdkIDs)
	})
	if err != nil {
		return nil, err
	}
	return cr, nil
}

// Update sets name, vendor, technology, quantumComputationModel and
// numberOfQubits. Supported SDKs are replaced only when the request lists them.
func (s *Service) Update(ctx context.Context, id string, req ComputeResourceRequest) (*catalog.ComputeResource, error) {
	var cr *catalog.ComputeResource
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if cr, err = s.get(ctx, tx, id); err != nil {
			return err
		}
		if err := req.apply(cr); err != nil {
			return err
		}
		_, err = tx.NewUpdate().Model(cr).
			Column("name", "vendor", "technology", "quantum_computation_model", "number_of_qubits").
			Set("updated_at = now()").
			WherePK().
			Returning("updated_at").
			Exec(ctx)
		if err != nil {
			s.log.Error("failed to update compute resource", logger.Error(err), slog.String("id", id))
			return apperror.ErrDatabase.WithInternal(err)
		}
		if req.SupportedSdkIDs == nil {
			return nil
		}
		return linkSdks(ctx, tx, id, req.SupportedSdkIDs)
	})
	if err != nil {
		return nil, err
	}
	return cr, nil
}

// Delete removes an unlinked compute resource, its properties and its SDK
// links. A resource still linked to a software platform or cloud service is
// left in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := catalog.RequireComputeResource(ctx, tx, id); err != nil {
			return err
		}

		platforms, err := catalog.SoftwarePlatformComputeResources.CountByRight(ctx, tx, id)
		if err != nil {
			return err
		}
		services, err := catalog.CloudServiceComputeResources.CountByRight(ctx, tx, id)
		if err != nil {
			return err
		}
		if platforms > 0 || services > 0 {
			return apperror.NewConsistency(fmt.Sprintf(
				"ComputeResource with ID %q cannot be deleted, because it is still in linked to existing software platforms or cloud services", id))
		}

		if err := catalog.SdkComputeResources.DeleteByRight(ctx, tx, id); err != nil {
			return err
		}
		n, err := s.props.DeleteByOwner(ctx, tx, properties.ComputeResourceOwner(id))
		if err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*catalog.ComputeResource)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			s.log.Error("failed to delete compute resource", logger.Error(err), slog.String("id", id))
			return apperror.ErrDatabase.WithInternal(err)
		}
		metrics.Deleted("compute_resource_property", n)
		metrics.Deleted("compute_resource", 1)
		return nil
	})
}

func (s *Service) SoftwarePlatforms(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.SoftwarePlatform], error) {
	if err := catalog.RequireComputeResource(ctx, s.db, id); err != nil {
		return paging.Page[catalog.SoftwarePlatform]{}, err
	}
	return catalog.List[catalog.SoftwarePlatform](ctx, s.db, req, "sp", "id",
		catalog.SoftwarePlatformComputeResources.Lefts("sp", "id", id))
}

func (s *Service) CloudServices(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.CloudService], error) {
	if err := catalog.RequireComputeResource(ctx, s.db, id); err != nil {
		return paging.Page[catalog.CloudService]{}, err
	}
	return catalog.List[catalog.CloudService](ctx, s.db, req, "cs", "id",
		catalog.CloudServiceComputeResources.Lefts("cs", "id", id))
}

// Sdks returns the SDKs that support the resource.
func (s *Service) Sdks(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Sdk], error) {
	if err := catalog.RequireComputeResource(ctx, s.db, id); err != nil {
		return paging.Page[catalog.Sdk]{}, err
	}
	return catalog.List[catalog.Sdk](ctx, s.db, req, "sdk", "id",
		catalog.SdkComputeResources.Lefts("sdk", "id", id))
}
