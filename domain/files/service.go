package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/internal/storage"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
	"github.com/emergent-company/atlas/pkg/paging"
	"github.com/emergent-company/atlas/pkg/tracing"
)

// BlobStore is the object storage the file service writes to.
// *storage.Service implements it.
type BlobStore interface {
	Enabled() bool
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Upload is a file received from a client.
type Upload struct {
	Name     string
	MimeType string
	Data     []byte
}

// Service handles business logic for implementation files
type Service struct {
	db       bun.IDB
	repo     *Repository
	blobs    BlobStore
	maxBytes int64
	log      *slog.Logger
}

// NewService creates a new file service
func NewService(db bun.IDB, repo *Repository, blobs BlobStore, cfg *config.Config, log *slog.Logger) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		blobs:    blobs,
		maxBytes: cfg.Storage.MaxUploadBytes,
		log:      log.With(logger.Scope("files.svc")),
	}
}

// storageError maps storage failures onto API errors.
func storageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotConfigured):
		return apperror.ErrStorageUnavailable
	default:
		return apperror.ErrStorage.WithInternal(err)
	}
}

func (s *Service) List(ctx context.Context, implementationID string, req paging.Request) (paging.Page[catalog.ImplementationFile], error) {
	if err := catalog.RequireImplementation(ctx, s.db, implementationID); err != nil {
		return paging.Page[catalog.ImplementationFile]{}, err
	}
	return s.repo.List(ctx, implementationID, req)
}

// file loads a file and checks that it belongs to the implementation.
func (s *Service) file(ctx context.Context, db bun.IDB, implementationID, id string) (*catalog.ImplementationFile, error) {
	if err := catalog.RequireImplementation(ctx, db, implementationID); err != nil {
		return nil, err
	}
	f, err := s.repo.Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if f.ImplementationID != implementationID {
		return nil, apperror.NewNotLinked("File", id, "Implementation", implementationID)
	}
	return f, nil
}

func (s *Service) Get(ctx context.Context, implementationID, id string) (*catalog.ImplementationFile, error) {
	return s.file(ctx, s.db, implementationID, id)
}

// Upload stores the blob under the implementation's key for the file name and
// records it. Uploading a name that is already stored replaces the blob and
// reuses the row; the flag reports whether a new row was created.
func (s *Service) Upload(ctx context.Context, implementationID string, up Upload) (*catalog.ImplementationFile, bool, error) {
	if !s.blobs.Enabled() {
		return nil, false, apperror.ErrStorageUnavailable
	}
	if s.maxBytes > 0 && int64(len(up.Data)) > s.maxBytes {
		return nil, false, apperror.NewValidation("file", fmt.Sprintf("file exceeds the maximum size of %d bytes", s.maxBytes))
	}
	if err := catalog.RequireImplementation(ctx, s.db, implementationID); err != nil {
		return nil, false, err
	}

	ctx, span := tracing.Start(ctx, "files.upload",
		attribute.String("atlas.implementation.id", implementationID),
		attribute.Int("atlas.file.size", len(up.Data)),
	)
	defer span.End()

	key := storage.ObjectKey(implementationID, up.Name)
	if err := s.blobs.Put(ctx, key, up.Data, up.MimeType); err != nil {
		return nil, false, tracing.Fail(span, storageError(err))
	}

	var (
		f       *catalog.ImplementationFile
		created bool
	)
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		existing, err := s.repo.FindByURL(ctx, tx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			f = existing
			f.Name = up.Name
			f.MimeType = up.MimeType
			f.Size = int64(len(up.Data))
			return s.repo.Update(ctx, tx, f)
		}
		created = true
		f = &catalog.ImplementationFile{
			ImplementationID: implementationID,
			Name:             up.Name,
			MimeType:         up.MimeType,
			FileURL:          key,
			Size:             int64(len(up.Data)),
		}
		return s.repo.Insert(ctx, tx, f)
	})
	if err != nil {
		s.discardBlob(ctx, key, created)
		return nil, false, tracing.Fail(span, err)
	}

	s.log.Info("file uploaded",
		slog.String("id", f.ID),
		slog.String("key", key),
		slog.Int64("size", f.Size),
		slog.Bool("replaced", !created),
	)
	return f, created, nil
}

// discardBlob removes a blob whose row could not be recorded. A blob that
// replaced the content of an existing row is kept; it is what the row points to.
func (s *Service) discardBlob(ctx context.Context, key string, created bool) {
	if !created {
		s.log.Warn("blob written but file row not recorded", slog.String("key", key))
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Error("failed to remove blob of unrecorded file", slog.String("key", key), logger.Error(err))
	}
}

// Content opens the stored blob of a file.
func (s *Service) Content(ctx context.Context, implementationID, id string) (*catalog.ImplementationFile, io.ReadCloser, error) {
	if !s.blobs.Enabled() {
		return nil, nil, apperror.ErrStorageUnavailable
	}
	f, err := s.file(ctx, s.db, implementationID, id)
	if err != nil {
		return nil, nil, err
	}
	body, err := s.blobs.Get(ctx, f.FileURL)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, apperror.ErrNotFound.WithMessagef("Content of File with ID %q does not exist", id)
		}
		return nil, nil, storageError(err)
	}
	return f, body, nil
}

// Delete removes the blob, then the row.
func (s *Service) Delete(ctx context.Context, implementationID, id string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		f, err := s.file(ctx, tx, implementationID, id)
		if err != nil {
			return err
		}
		if err := s.deleteBlob(ctx, f); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}
		metrics.Deleted("implementation_file", 1)
		return nil
	})
}

// DeleteByImplementation removes every file of an implementation, blobs
// first. It runs inside the caller's transaction.
func (s *Service) DeleteByImplementation(ctx context.Context, tx bun.IDB, implementationID string) (int64, error) {
	files, err := s.repo.ListAll(ctx, tx, implementationID)
	if err != nil {
		return 0, err
	}
	for i := range files {
		if err := s.deleteBlob(ctx, &files[i]); err != nil {
			return 0, err
		}
		if err := s.repo.Delete(ctx, tx, files[i].ID); err != nil {
			return 0, err
		}
	}
	metrics.Deleted("implementation_file", int64(len(files)))
	return int64(len(files)), nil
}

func (s *Service) deleteBlob(ctx context.Context, f *catalog.ImplementationFile) error {
	if !s.blobs.Enabled() {
		// Rows can outlive a storage configuration; there is nothing to delete then.
		s.log.Warn("storage disabled, deleting file row only", slog.String("id", f.ID), slog.String("key", f.FileURL))
		return nil
	}
	return storageError(s.blobs.Delete(ctx, f.FileURL))
}
