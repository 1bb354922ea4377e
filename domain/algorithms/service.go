package algorithms

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"

	"github.com/emergent-company/atlas/domain/algorithmrelations"
	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/domain/discussions"
	"github.com/emergent-company/atlas/domain/implementations"
	"github.com/emergent-company/atlas/domain/patternrelations"
	"github.com/emergent-company/atlas/domain/properties"
	"github.com/emergent-company/atlas/domain/revisions"
	"github.com/emergent-company/atlas/domain/tags"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
	"github.com/emergent-company/atlas/pkg/paging"
	"github.com/emergent-company/atlas/pkg/tracing"
)

// Service handles business logic for algorithms
type Service struct {
	db              bun.IDB
	repo            *Repository
	implementations *implementations.Service
	props           *properties.Repository
	algorithmRels   *algorithmrelations.Repository
	patternRels     *patternrelations.Repository
	discussions     *discussions.Repository
	tags            *tags.Service
	revisions       *revisions.Repository
	log             *slog.Logger
}

// Params groups the collaborators of the algorithm service.
type Params struct {
	fx.In

	DB                 bun.IDB
	Repo               *Repository
	Implementations    *implementations.Service
	Properties         *properties.Repository
	AlgorithmRelations *algorithmrelations.Repository
	PatternRelations   *patternrelations.Repository
	Discussions        *discussions.Repository
	Tags               *tags.Service
	Revisions          *revisions.Repository
	Log                *slog.Logger
}

// NewService creates a new algorithm service
func NewService(p Params) *Service {
	return &Service{
		db:              p.DB,
		repo:            p.Repo,
		implementations: p.Implementations,
		props:           p.Properties,
		algorithmRels:   p.AlgorithmRelations,
		patternRels:     p.PatternRelations,
		discussions:     p.Discussions,
		tags:            p.Tags,
		revisions:       p.Revisions,
		log:             p.Log.With(logger.Scope("algorithms.svc")),
	}
}

func (s *Service) List(ctx context.Context, req paging.Request) (paging.Page[catalog.Algorithm], error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id string) (*catalog.Algorithm, error) {
	return s.repo.Get(ctx, s.db, id)
}

// Create stores an algorithm with its knowledge artifact and records an ADD revision.
func (s *Service) Create(ctx context.Context, req AlgorithmRequest) (*catalog.Algorithm, error) {
	a := &catalog.Algorithm{}
	if err := req.apply(a); err != nil {
		return nil, err
	}
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		id, err := catalog.CreateArtifact(ctx, tx, catalog.ArtifactAlgorithm)
		if err != nil {
			return err
		}
		a.ID = id
		if err := s.repo.Insert(ctx, tx, a); err != nil {
			return err
		}
		return s.revisions.Record(ctx, tx, revisions.EntityAlgorithm, a.ID, revisions.TypeAdd, a)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("algorithm created",
		slog.String("id", a.ID),
		slog.String("computation_model", string(a.ComputationModel)),
	)
	return a, nil
}

func (s *Service) Update(ctx context.Context, id string, req AlgorithmRequest) (*catalog.Algorithm, error) {
	var a *catalog.Algorithm
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if a, err = s.repo.Get(ctx, tx, id); err != nil {
			return err
		}
		if err := req.apply(a); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, tx, a); err != nil {
			return err
		}
		if err := catalog.TouchArtifact(ctx, tx, id); err != nil {
			return err
		}
		return s.revisions.Record(ctx, tx, revisions.EntityAlgorithm, id, revisions.TypeMod, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an algorithm with its implementations, properties, relations
// and discussions. Linked publications, problem types, application areas and
// tags are unlinked and survive.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.Start(ctx, "algorithms.delete", attribute.String("atlas.algorithm.id", id))
	defer span.End()

	var counts struct{ implementations, properties, algorithmRels, patternRels int64 }
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		a, err := s.repo.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if counts.implementations, err = s.implementations.DeleteByAlgorithm(ctx, tx, id); err != nil {
			return err
		}
		if counts.properties, err = s.props.DeleteByOwner(ctx, tx, properties.AlgorithmOwner(id)); err != nil {
			return err
		}
		if counts.algorithmRels, err = s.algorithmRels.DeleteByAlgorithm(ctx, tx, id); err != nil {
			return err
		}
		if counts.patternRels, err = s.patternRels.DeleteByAlgorithm(ctx, tx, id); err != nil {
			return err
		}
		if err := s.discussions.DeleteByArtifact(ctx, tx, id); err != nil {
			return err
		}
		for _, l := range []catalog.LinkTable{
			catalog.AlgorithmPublications,
			catalog.AlgorithmProblemTypes,
			catalog.AlgorithmApplicationAreas,
			catalog.AlgorithmTags,
		} {
			if err := l.DeleteByLeft(ctx, tx, id); err != nil {
				return err
			}
		}
		if err := s.revisions.Record(ctx, tx, revisions.EntityAlgorithm, id, revisions.TypeDel, a); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return catalog.DeleteArtifact(ctx, tx, id)
	})
	if err != nil {
		return tracing.Fail(span, err)
	}

	metrics.Deleted("algorithm", 1)
	metrics.Deleted("compute_resource_property", counts.properties)
	metrics.Deleted("algorithm_relation", counts.algorithmRels)
	metrics.Deleted("pattern_relation", counts.patternRels)
	span.SetAttributes(attribute.Int64("atlas.algorithm.implementations_deleted", counts.implementations))
	s.log.Info("algorithm deleted",
		slog.String("id", id),
		slog.Int64("implementations", counts.implementations),
		slog.Int64("algorithm_relations", counts.algorithmRels),
		slog.Int64("pattern_relations", counts.patternRels),
	)
	return nil
}

// --- Linked entities ---

func (s *Service) Publications(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Publication], error) {
	if err := catalog.RequireAlgorithm(ctx, s.db, id); err != nil {
		return paging.Page[catalog.Publication]{}, err
	}
	return s.repo.Publications(ctx, id, req)
}

func (s *Service) ProblemTypes(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.ProblemType], error) {
	if err := catalog.RequireAlgorithm(ctx, s.db, id); err != nil {
		return paging.Page[catalog.ProblemType]{}, err
	}
	return s.repo.ProblemTypes(ctx, id, req)
}

func (s *Service) ApplicationAreas(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.ApplicationArea], error) {
	if err := catalog.RequireAlgorithm(ctx, s.db, id); err != nil {
		return paging.Page[catalog.ApplicationArea]{}, err
	}
	return s.repo.ApplicationAreas(ctx, id, req)
}

func (s *Service) Tags(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Tag], error) {
	if err := catalog.RequireAlgorithm(ctx, s.db, id); err != nil {
		return paging.Page[catalog.Tag]{}, err
	}
	return s.tags.Of(ctx, catalog.AlgorithmTags, id, req)
}

// Publication returns a publication linked to the algorithm.
func (s *Service) Publication(ctx context.Context, id, publicationID string) (*catalog.Publication, error) {
	p := &catalog.Publication{}
	if err := linked(ctx, s.db, catalog.AlgorithmPublications, id, publicationID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ProblemType returns a problem type linked to the algorithm.
func (s *Service) ProblemType(ctx context.Context, id, problemTypeID string) (*catalog.ProblemType, error) {
	pt := &catalog.ProblemType{}
	if err := linked(ctx, s.db, catalog.AlgorithmProblemTypes, id, problemTypeID, pt); err != nil {
		return nil, err
	}
	return pt, nil
}

// ApplicationArea returns an application area linked to the algorithm.
func (s *Service) ApplicationArea(ctx context.Context, id, areaID string) (*catalog.ApplicationArea, error) {
	aa := &catalog.ApplicationArea{}
	if err := linked(ctx, s.db, catalog.AlgorithmApplicationAreas, id, areaID, aa); err != nil {
		return nil, err
	}
	return aa, nil
}

// linked checks the pair is linked through l and loads the right-hand entity into model.
func linked(ctx context.Context, db bun.IDB, l catalog.LinkTable, id, otherID string, model any) error {
	if err := l.Linked(ctx, db, id, otherID); err != nil {
		return err
	}
	return catalog.Get(ctx, db, model, l.RightLabel, otherID)
}

// connector returns link and unlink operations over l.
func (s *Service) connector(l catalog.LinkTable) (link, unlink catalog.LinkFunc) {
	link = func(ctx context.Context, id, otherID string) error {
		return database.InTx(ctx, s.db, func(tx bun.IDB) error {
			return l.Connect(ctx, tx, id, otherID)
		})
	}
	unlink = func(ctx context.Context, id, otherID string) error {
		return database.InTx(ctx, s.db, func(tx bun.IDB) error {
			return l.Disconnect(ctx, tx, id, otherID)
		})
	}
	return link, unlink
}

// AddTag links a tag to the algorithm, creating the tag when its value is new.
func (s *Service) AddTag(ctx context.Context, id string, req tags.TagRequest) (*catalog.Tag, error) {
	var t *catalog.Tag
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := catalog.RequireAlgorithm(ctx, tx, id); err != nil {
			return err
		}
		var err error
		t, err = s.tags.LinkTo(ctx, tx, catalog.AlgorithmTags, id, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) RemoveTag(ctx context.Context, id, value string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if err := catalog.RequireAlgorithm(ctx, tx, id); err != nil {
			return err
		}
		return s.tags.UnlinkFrom(ctx, tx, catalog.AlgorithmTags, id, value)
	})
}

// --- Revisions ---

func (s *Service) Revisions(ctx context.Context, id string, req paging.Request) (paging.Page[revisions.Summary], error) {
	if err := catalog.RequireAlgorithm(ctx, s.db, id); err != nil {
		return paging.Page[revisions.Summary]{}, err
	}
	return s.revisions.List(ctx, revisions.EntityAlgorithm, id, req)
}

func (s *Service) Revision(ctx context.Context, id string, number int64) (*revisions.Revision, error) {
	if err := catalog.RequireAlgorithm(ctx, s.db, id); err != nil {
		return nil, err
	}
	return s.revisions.Get(ctx, revisions.EntityAlgorithm, id, number)
}
