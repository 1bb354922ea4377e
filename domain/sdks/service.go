// Package sdks manages quantum programming kits and the compute resources
// they can target.
package sdks

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

// SdkRequest is the body for creating or updating an SDK
type SdkRequest struct {
	Name string `json:"name"`
}

func (req SdkRequest) apply(sdk *catalog.Sdk) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperror.NewValidation("name", "name is required")
	}
	sdk.Name = name
	return nil
}

func duplicate(name string) error {
	return apperror.NewConsistency(fmt.Sprintf("Sdk with name %q already exists", name))
}

// Service handles business logic for SDKs
type Service struct {
	db  bun.IDB
	log *slog.Logger
}

// NewService creates a new SDK service
func NewService(db bun.IDB, log *slog.Logger) *Service {
	return &Service{db: db, log: log.With(logger.Scope("sdks.svc"))}
}

func (s *Service) List(ctx context.Context, req paging.Request) (paging.Page[catalog.Sdk], error) {
	page, err := catalog.List[catalog.Sdk](ctx, s.db, req, "sdk", "id",
		catalog.Search("sdk", req.Search, "name"))
	if err != nil {
		s.log.Error("failed to list sdks", logger.Error(err))
	}
	return page, err
}

func (s *Service) Get(ctx context.Context, id string) (*catalog.Sdk, error) {
	return s.get(ctx, s.db, id)
}

func (s *Service) get(ctx context.Context, db bun.IDB, id string) (*catalog.Sdk, error) {
	sdk := &catalog.Sdk{}
	if err := catalog.Get(ctx, db, sdk, "Sdk", id); err != nil {
		return nil, err
	}
	return sdk, nil
}

// Create adds an SDK. Names are unique.
func (s *Service) Create(ctx context.Context, req SdkRequest) (*catalog.Sdk, error) {
	sdk := &catalog.Sdk{}
	if err := req.apply(sdk); err != nil {
		return nil, err
	}
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		res, err := tx.NewInsert().Model(sdk).On("CONFLICT (name) DO NOTHING").Returning("NULL").Exec(ctx)
		if err != nil {
			s.log.Error("failed to create sdk", logger.Error(err), slog.String("name", sdk.Name))
			return apperror.ErrDatabase.WithInternal(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return duplicate(sdk.Name)
		}
		if err := tx.NewSelect().Model(sdk).Where("sdk.name = ?", sdk.Name).Scan(ctx); err != nil {
			return apperror.ErrDatabase.WithInternal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sdk, nil
}

// Update renames the SDK. The new name must not belong to another SDK.
func (s *Service) Update(ctx context.Context, id string, req SdkRequest) (*catalog.Sdk, error) {
	var sdk *catalog.Sdk
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if sdk, err = s.get(ctx, tx, id); err != nil {
			return err
		}
		if err := req.apply(sdk); err != nil {
			return err
		}
		taken, err := tx.NewSelect().Model((*catalog.Sdk)(nil)).
			Where("sdk.name = ?", sdk.Name).
			Where("sdk.id <> ?", id).
			Exists(ctx)
		if err != nil {
			return apperror.ErrDatabase.WithInternal(err)
		}
		if taken {
			return duplicate(sdk.Name)
		}
		_, err = tx.NewUpdate().Model(sdk).
			Column("name").
			Set("updated_at = now()").
			WherePK().
			Returning("updated_at").
			Exec(ctx)
		if err != nil {
			s.log.Error("failed to update sdk", logger.Error(err), slog.String("id", id))
			return apperror.ErrDatabase.WithInternal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sdk, nil
}

// Delete clears the SDK from implementations, unlinks its compute resources
// and removes it.
func (s *Service) Delete(ctx context.Context, id string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := catalog.RequireSdk(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.NewUpdate().Model((*catalog.Implementation)(nil)).
			Set("sdk_id = NULL").
			Where("sdk_id = ?", id).
			Exec(ctx)
		if err != nil {
			s.log.Error("failed to detach sdk from implementations", logger.Error(err), slog.String("id", id))
			return apperror.ErrDatabase.WithInternal(err)
		}
		if err := catalog.SdkComputeResources.DeleteByLeft(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*catalog.Sdk)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			s.log.Error("failed to delete sdk", logger.Error(err), slog.String("id", id))
			return apperror.ErrDatabase.WithInternal(err)
		}
		metrics.Deleted("sdk", 1)
		return nil
	})
}

func (s *Service) ComputeResources(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.ComputeResource], error) {
	if err := catalog.RequireSdk(ctx, s.db, id); err != nil {
		return paging.Page[catalog.ComputeResource]{}, err
	}
	return catalog.List[catalog.ComputeResource](ctx, s.db, req, "cr", "id",
		catalog.SdkComputeResources.Rights("cr", "id", id))
}

// ComputeResource returns a compute resource the SDK supports.
func (s *Service) ComputeResource(ctx context.Context, id, resourceID string) (*catalog.ComputeResource, error) {
	if err := catalog.SdkComputeResources.Linked(ctx, s.db, id, resourceID); err != nil {
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
		return catalog.SdkComputeResources.Connect(ctx, tx, id, resourceID)
	})
}

func (s *Service) UnlinkComputeResource(ctx context.Context, id, resourceID string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		return catalog.SdkComputeResources.Disconnect(ctx, tx, id, resourceID)
	})
}

// Implementations returns the implementations written against the SDK.
func (s *Service) Implementations(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Implementation], error) {
	if err := catalog.RequireSdk(ctx, s.db, id); err != nil {
		return paging.Page[catalog.Implementation]{}, err
	}
	return catalog.List[catalog.Implementation](ctx, s.db, req, "impl", "id",
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("impl.sdk_id = ?", id)
		})
}
