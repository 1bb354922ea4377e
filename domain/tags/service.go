package tags

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
	"github.com/emergent-company/atlas/pkg/paging"
)

// MaxValueLength bounds tag values
const MaxValueLength = 255

// TagRequest is the body for creating a tag or linking one by value
type TagRequest struct {
	Value    string `json:"value"`
	Category string `json:"category,omitempty"`
}

// Normalize trims the request and checks the value.
func (r TagRequest) Normalize() (*catalog.Tag, error) {
	value := strings.TrimSpace(r.Value)
	if value == "" {
		return nil, apperror.NewValidation("value", "value is required")
	}
	if len(value) > MaxValueLength {
		return nil, apperror.NewValidation("value", fmt.Sprintf("value must be at most %d characters", MaxValueLength))
	}
	return &catalog.Tag{Value: value, Category: strings.TrimSpace(r.Category)}, nil
}

// Service handles business logic for tags
type Service struct {
	db   bun.IDB
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new tag service
func NewService(db bun.IDB, repo *Repository, log *slog.Logger) *Service {
	return &Service{db: db, repo: repo, log: log.With(logger.Scope("tags.svc"))}
}

func (s *Service) List(ctx context.Context, req paging.Request) (paging.Page[catalog.Tag], error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, value string) (*catalog.Tag, error) {
	return s.repo.Get(ctx, s.db, value)
}

// Create stores a new tag. The value must not be taken.
func (s *Service) Create(ctx context.Context, req TagRequest) (*catalog.Tag, error) {
	t, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Insert(ctx, s.db, t)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperror.NewConsistency(fmt.Sprintf("Tag with value %q already exists", t.Value))
	}
	return s.repo.Get(ctx, s.db, t.Value)
}

// Delete unlinks the tag from every algorithm and implementation, then removes it.
func (s *Service) Delete(ctx context.Context, value string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if _, err := s.repo.Get(ctx, tx, value); err != nil {
			return err
		}
		if err := catalog.AlgorithmTags.DeleteByRight(ctx, tx, value); err != nil {
			return err
		}
		if err := catalog.ImplementationTags.DeleteByRight(ctx, tx, value); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, value); err != nil {
			return err
		}
		metrics.Deleted("tag", 1)
		return nil
	})
}

// Algorithms returns the algorithms carrying the tag.
func (s *Service) Algorithms(ctx context.Context, value string, req paging.Request) (paging.Page[catalog.Algorithm], error) {
	if _, err := s.repo.Get(ctx, s.db, value); err != nil {
		return paging.Page[catalog.Algorithm]{}, err
	}
	return s.repo.Algorithms(ctx, value, req)
}

// Implementations returns the implementations carrying the tag.
func (s *Service) Implementations(ctx context.Context, value string, req paging.Request) (paging.Page[catalog.Implementation], error) {
	if _, err := s.repo.Get(ctx, s.db, value); err != nil {
		return paging.Page[catalog.Implementation]{}, err
	}
	return s.repo.Implementations(ctx, value, req)
}

// LinkTo creates the tag if needed and links it through l to ownerID.
// Callers check that the owner exists.
func (s *Service) LinkTo(ctx context.Context, tx bun.IDB, l catalog.LinkTable, ownerID string, req TagRequest) (*catalog.Tag, error) {
	t, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	if t, err = s.repo.Ensure(ctx, tx, t); err != nil {
		return nil, err
	}
	if err := l.Link(ctx, tx, ownerID, t.Value); err != nil {
		return nil, err
	}
	metrics.LinkChanges.WithLabelValues(l.Table, "link").Inc()
	return t, nil
}

// CleanupOrphans deletes tags created before cutoff that nothing links to.
func (s *Service) CleanupOrphans(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.repo.DeleteOrphans(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	metrics.Deleted("tag", n)
	return n, nil
}

// UnlinkFrom removes the link through l between ownerID and the tag.
func (s *Service) UnlinkFrom(ctx context.Context, tx bun.IDB, l catalog.LinkTable, ownerID, value string) error {
	if _, err := s.repo.Get(ctx, tx, value); err != nil {
		return err
	}
	if err := l.Unlink(ctx, tx, ownerID, value); err != nil {
		return err
	}
	metrics.LinkChanges.WithLabelValues(l.Table, "unlink").Inc()
	return nil
}

// Of returns the tags linked through l to ownerID.
func (s *Service) Of(ctx context.Context, l catalog.LinkTable, ownerID string, req paging.Request) (paging.Page[catalog.Tag], error) {
	return s.repo.Of(ctx, l, ownerID, req)
}
