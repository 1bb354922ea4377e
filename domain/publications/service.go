package publications

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/domain/discussions"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
	"github.com/emergent-company/atlas/pkg/paging"
	"github.com/emergent-company/atlas/pkg/tracing"
)

// PublicationRequest is the body for creating or updating a publication
type PublicationRequest struct {
	Title   string   `json:"title"`
	URL     string   `json:"url,omitempty"`
	DOI     string   `json:"doi,omitempty"`
	Authors []string `json:"authors,omitempty"`
}

func (req PublicationRequest) apply(p *catalog.Publication) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return apperror.NewValidation("title", "title is required")
	}
	link := strings.TrimSpace(req.URL)
	if link != "" {
		if u, err := url.Parse(link); err != nil || !u.IsAbs() {
			return apperror.NewValidation("url", "url must be an absolute URL")
		}
	}

	authors := make([]string, 0, len(req.Authors))
	for _, a := range req.Authors {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}

	p.Title = title
	p.URL = link
	p.DOI = strings.TrimSpace(req.DOI)
	p.Authors = authors
	return nil
}

// Service handles business logic for publications
type Service struct {
	db          bun.IDB
	repo        *Repository
	discussions *discussions.Repository
	log         *slog.Logger
}

// NewService creates a new publication service
func NewService(db bun.IDB, repo *Repository, discussionRepo *discussions.Repository, log *slog.Logger) *Service {
	return &Service{
		db:          db,
		repo:        repo,
		discussions: discussionRepo,
		log:         log.With(logger.Scope("publications.svc")),
	}
}

func (s *Service) List(ctx context.Context, req paging.Request) (paging.Page[catalog.Publication], error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id string) (*catalog.Publication, error) {
	return s.repo.Get(ctx, s.db, id)
}

// Create stores a publication together with its knowledge artifact row.
func (s *Service) Create(ctx context.Context, req PublicationRequest) (*catalog.Publication, error) {
	p := &catalog.Publication{}
	if err := req.apply(p); err != nil {
		return nil, err
	}
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		id, err := catalog.CreateArtifact(ctx, tx, catalog.ArtifactPublication)
		if err != nil {
			return err
		}
		p.ID = id
		return s.repo.Insert(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("publication created", slog.String("id", p.ID))
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, req PublicationRequest) (*catalog.Publication, error) {
	var p *catalog.Publication
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if p, err = s.repo.Get(ctx, tx, id); err != nil {
			return err
		}
		if err := req.apply(p); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, tx, p); err != nil {
			return err
		}
		return catalog.TouchArtifact(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete unlinks the publication from algorithms and implementations, removes
// its discussion topics, then the publication and its artifact row.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.Start(ctx, "publications.delete", attribute.String("atlas.publication.id", id))
	defer span.End()

	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if _, err := s.repo.Get(ctx, tx, id); err != nil {
			return err
		}
		if err := catalog.AlgorithmPublications.DeleteByRight(ctx, tx, id); err != nil {
			return err
		}
		if err := catalog.ImplementationPublications.DeleteByRight(ctx, tx, id); err != nil {
			return err
		}
		if err := s.discussions.DeleteByArtifact(ctx, tx, id); err != nil {
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
	metrics.Deleted("publication", 1)
	s.log.Info("publication deleted", slog.String("id", id))
	return nil
}

func (s *Service) Algorithms(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Algorithm], error) {
	if err := catalog.RequirePublication(ctx, s.db, id); err != nil {
		return paging.Page[catalog.Algorithm]{}, err
	}
	return s.repo.Algorithms(ctx, id, req)
}

func (s *Service) Implementations(ctx context.Context, id string, req paging.Request) (paging.Page[catalog.Implementation], error) {
	if err := catalog.RequirePublication(ctx, s.db, id); err != nil {
		return paging.Page[catalog.Implementation]{}, err
	}
	return s.repo.Implementations(ctx, id, req)
}
