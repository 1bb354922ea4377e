package implementations

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/domain/discussions"
	"github.com/emergent-company/atlas/domain/files"
	"github.com/emergent-company/atlas/domain/properties"
	"github.com/emergent-company/atlas/domain/revisions"
	"github.com/emergent-company/atlas/domain/tags"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
	"github.com/emergent-company/atlas/pkg/paging"
	"github.com/emergent-company/atlas/pkg/tracing"
)

// Service handles business logic for implementations
type Service struct {
	db          bun.IDB
	repo        *Repository
	props       *properties.Repository
	files       *files.Service
	tags        *tags.Service
	discussions *discussions.Repository
	revisions   *revisions.Repository
	log         *slog.Logger
}

// Params groups the collaborators of the implementation service.
type Params struct {
	fx.In

	DB          bun.IDB
	Repo        *Repository
	Properties  *properties.Repository
	Files       *files.Service
	Tags        *tags.Service
	Discussions *discussions.Repository
	Revisions   *revisions.Repository
	Log         *slog.Logger
}

// NewService creates a new implementation service
func NewService(p Params) *Service {
	return &Service{
		db:          p.DB,
		repo:        p.Repo,
		props:       p.Properties,
		files:       p.Files,
		tags:        p.Tags,
		discussions: p.Discussions,
		revisions:   p.Revisions,
		log:         p.Log.With(logger.Scope("implementations.svc")),
	}
}

// List returns implementations. With a non-empty algorithmID only that algorithm's.
func (s *Service) List(ctx context.Context, algorithmID string, req paging.Request) (paging.Page[catalog.Implementation], error) {
	if algorithmID != "" {
		if err := catalog.RequireAlgorithm(ctx, s.db, algorithmID); err != nil {
			return paging.Page[catalog.Implementation]{}, err
		}
	}
	return s.repo.List(ctx, algorithmID, req)
}

// Get loads an implementation. With a non-empty algorithmID it must implement that algorithm.
func (s *Service) Get(ctx context.Context, algorithmID, id string) (*catalog.Implementation, error) {
	return s.implementation(ctx, s.db, algorithmID, id)
}

func (s *Service) implementation(ctx context.Context, db bun.IDB, algorithmID, id string) (*catalog.Implementation, error) {
	if algorithmID != "" {
		if err := catalog.RequireAlgorithm(ctx, db, algorithmID); err != nil {
			return nil, err
		}
	}
	impl, err := s.repo.Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if algorithmID != "" {
		if err := CheckOfAlgorithm(impl, algorithmID); err != nil {
			return nil, err
		}
	}
	return impl, nil
}

// CheckOfAlgorithm fails with not-linked when impl does not implement the algorithm.
func CheckOfAlgorithm(impl *catalog.Implementation, algorithmID string) error {
	if impl.ImplementedAlgorithmID != algorithmID {
		return apperror.NewNotLinked("Implementation", impl.ID, "Algorithm", algorithmID)
	}
	return nil
}

func requireSdk(ctx context.Context, db bun.IDB, impl *catalog.Implementation) error {
	if impl.SdkID == nil {
		return nil
	}
	return catalog.RequireSdk(ctx, db, *impl.SdkID)
}

// Create adds an implementation of an existing algorithm and records its first revision.
func (s *Service) Create(ctx context.Context, algorithmID string, req ImplementationRequest) (*catalog.Implementation, error) {
	impl := &catalog.Implementation{ImplementedAlgorithmID: algorithmID}
	if err := req.apply(impl); err != nil {
		return nil, err
	}
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := catalog.RequireAlgorithm(ctx, tx, algorithmID); err != nil {
			return err
		}
		if err := requireSdk(ctx, tx, impl); err != nil {
			return err
		}
		id, err := catalog.CreateArtifact(ctx, tx, catalog.ArtifactImplementation)
		if err != nil {
			return err
		}
		impl.ID = id
		if err := s.repo.Insert(ctx, tx, impl); err != nil {
			return err
		}
		return s.revisions.Record(ctx, tx, revisions.EntityImplementation, impl.ID, revisions.TypeAdd, impl)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("implementation created", slog.String("id", impl.ID), slog.String("algorithm_id", algorithmID))
	return impl, nil
}

func (s *Service) Update(ctx context.Context, algorithmID, id string, req ImplementationRequest) (*catalog.Implementation, error) {
	var impl *catalog.Implementation
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if impl, err = s.implementation(ctx, tx, algorithmID, id); err != nil {
			return err
		}
		if err := req.apply(impl); err != nil {
			return err
		}
		if err := requireSdk(ctx, tx, impl); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, tx, impl); err != nil {
			return err
		}
		if err := catalog.TouchArtifact(ctx, tx, id); err != nil {
			return err
		}
		return s.revisions.Record(ctx, tx, revisions.EntityImplementation, id, revisions.TypeMod, impl)
	})
	if err != nil {
		return nil, err
	}
	return impl, nil
}

// Delete removes an implementation and everything that hangs off it.
func (s *Service) Delete(ctx context.Context, algorithmID, id string) error {
	ctx, span := tracing.Start(ctx, "implementations.delete", attribute.String("atlas.implementation.id", id))
	defer span.End()

	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		impl, err := s.implementation(ctx, tx, algorithmID, id)
		if err != nil {
			return err
		}
		return s.cascade(ctx, tx, impl)
	})
	if err != nil {
		return tracing.Fail(span, err)
	}
	s.log.Info("implementation deleted", slog.String("id", id))
	return nil
}

// DeleteByAlgorithm cascades the delete of every implementation of an
// algorithm inside the caller's transaction.
func (s *Service) DeleteByAlgorithm(ctx context.Context, tx bun.IDB, algorithmID string) (int64, error) {
	ids, err := s.repo.IDsByAlgorithm(ctx, tx, algorithmID)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		impl, err := s.repo.Get(ctx, tx, id)
		if err != nil {
			return 0, err
		}
		if err := s.cascade(ctx, tx, impl); err != nil {
			return 0, err
		}
	}
	return int64(len(ids)), nil
}

func (s *Service) cascade(ctx context.Context, tx bun.IDB, impl *catalog.Implementation) error {
	n, err := s.props.DeleteByOwner(ctx, tx, properties.ImplementationOwner(impl.ID))
	if err != nil {
		return err
	}
	metrics.Deleted("compute_resource_property", n)

	if _, err := s.files.DeleteByImplementation(ctx, tx, impl.ID); err != nil {
		return err
	}
	for _, l := range []catalog.LinkTable{
		catalog.ImplementationSoftwarePlatforms,
		catalog.ImplementationPublications,
		catalog.ImplementationTags,
	} {
		if err := l.DeleteByLeft(ctx, tx, impl.ID); err != nil {
			return err
		}
	}
	if err := s.discussions.DeleteByArtifact(ctx, tx, impl.ID); err != nil {
		return err
	}
	if err := s.revisions.Record(ctx, tx, revisions.EntityImplementation, impl.ID, revisions.TypeDel, impl); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tx, impl.ID); err != nil {
		return err
	}
	if err := catalog.DeleteArtifact(ctx, tx, impl.ID); err != nil {
		return err
	}
	metrics.Deleted("implementation", 1)
	return nil
}

// --- Linked entities ---

func (s *Service) SoftwarePlatforms(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.SoftwarePlatform], error) {
	if err := catalog.RequireImplementation(ctx, s.db, id); err != nil {
		return paging.Page[catalog.SoftwarePlatform]{}, err
	}
	return s.repo.SoftwarePlatforms(ctx, id, req)
}

// SoftwarePlatform returns a software platform linked to the implementation.
func (s *Service) SoftwarePlatform(ctx context.Context, id, platformID string) (*catalog.SoftwarePlatform, error) {
	if err := catalog.ImplementationSoftwarePlatforms.Linked(ctx, s.db, id, platformID); err != nil {
		return nil, err
	}
	sp := &catalog.SoftwarePlatform{}
	if err := catalog.Get(ctx, s.db, sp, "SoftwarePlatform", platformID); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *Service) LinkSoftwarePlatform(ctx context.Context, id, platformID string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		return catalog.ImplementationSoftwarePlatforms.Connect(ctx, tx, id, platformID)
	})
}

func (s *Service) UnlinkSoftwarePlatform(ctx context.Context, id, platformID string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		return catalog.ImplementationSoftwarePlatforms.Disconnect(ctx, tx, id, platformID)
	})
}

func (s *Service) Publications(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Publication], error) {
	if err := catalog.RequireImplementation(ctx, s.db, id); err != nil {
		return paging.Page[catalog.Publication]{}, err
	}
	return s.repo.Publications(ctx, id, req)
}

// Publication returns a publication linked to the implementation.
func (s *Service) Publication(ctx context.Context, id, publicationID string) (*catalog.Publication, error) {
	if err := catalog.ImplementationPublications.Linked(ctx, s.db, id, publicationID); err != nil {
		return nil, err
	}
	p := &catalog.Publication{}
	if err := catalog.Get(ctx, s.db, p, "Publication", publicationID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) LinkPublication(ctx context.Context, id, publicationID string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		return catalog.ImplementationPublications.Connect(ctx, tx, id, publicationID)
	})
}

func (s *Service) UnlinkPublication(ctx context.Context, id, publicationID string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		return catalog.ImplementationPublications.Disconnect(ctx, tx, id, publicationID)
	})
}

func (s *Service) Tags(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Tag], error) {
	if err := catalog.RequireImplementation(ctx, s.db, id); err != nil {
		return paging.Page[catalog.Tag]{}, err
	}
	return s.tags.Of(ctx, catalog.ImplementationTags, id, req)
}

// AddTag links a tag to the implementation, creating the tag when its value is new.
func (s *Service) AddTag(ctx context.Context, id string, req tags.TagRequest) (*catalog.Tag, error) {
	var t *catalog.Tag
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := catalog.RequireImplementation(ctx, tx, id); err != nil {
			return err
		}
		var err error
		t, err = s.tags.LinkTo(ctx, tx, catalog.ImplementationTags, id, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) RemoveTag(ctx context.Context, id, value string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := catalog.RequireImplementation(ctx, tx, id); err != nil {
			return err
		}
		return s.tags.UnlinkFrom(ctx, tx, catalog.ImplementationTags, id, value)
	})
}

// --- Revisions ---

func (s *Service) Revisions(ctx context.Context, id string, req paging.Request) (paging.Page[revisions.Summary], error) {
	if err := catalog.RequireImplementation(ctx, s.db, id); err != nil {
		return paging.Page[revisions.Summary]{}, err
	}
	return s.revisions.List(ctx, revisions.EntityImplementation, id, req)
}

func (s *Service) Revision(ctx context.Context, id string, number int64) (*revisions.Revision, error) {
	if err := catalog.RequireImplementation(ctx, s.db, id); err != nil {
		return nil, err
	}
	return s.revisions.Get(ctx, revisions.EntityImplementation, id, number)
}
