// Package revisions records and serves the change history of algorithms and
// implementations.
package revisions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Repository handles database operations for revisions
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new revision repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("revisions.repo")),
	}
}

// Record stores a snapshot of the entity. db is usually the caller's transaction.
func (r *Repository) Record(ctx context.Context, db bun.IDB, entityType EntityType, entityID string, typ Type, snapshot any) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return apperror.NewInternal("failed to encode revision snapshot", err)
	}

	rev := &Revision{
		EntityType: entityType,
		EntityID:   entityID,
		Type:       typ,
		Snapshot:   raw,
	}
	if _, err := db.NewInsert().Model(rev).Returning("revision_number, created_at").Exec(ctx); err != nil {
		r.log.Error("failed to record revision", logger.Error(err),
			slog.String("entity_type", string(entityType)),
			slog.String("entity_id", entityID),
		)
		return apperror.ErrDatabase.WithInternal(err)
	}
	metrics.RevisionsRecorded.WithLabelValues(string(entityType), string(typ)).Inc()
	return nil
}

// List returns the revisions of an entity, oldest first.
func (r *Repository) List(ctx context.Context, entityType EntityType, entityID string, req paging.Request) (paging.Page[Summary], error) {
	var revs []Revision
	total, err := r.db.NewSelect().
		Model(&revs).
		Column("revision_number", "revision_type", "created_at").
		Where("entity_type = ?", entityType).
		Where("entity_id = ?", entityID).
		OrderExpr("revision_number ASC").
		Limit(req.Size).
		Offset(req.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		r.log.Error("failed to list revisions", logger.Error(err), slog.String("entity_id", entityID))
		return paging.Page[Summary]{}, apperror.ErrDatabase.WithInternal(err)
	}
	return paging.Map(paging.New(revs, total, req), Revision.ToSummary), nil
}

// Get returns one revision of an entity.
func (r *Repository) Get(ctx context.Context, entityType EntityType, entityID string, number int64) (*Revision, error) {
	var rev Revision
	err := r.db.NewSelect().
		Model(&rev).
		Where("entity_type = ?", entityType).
		Where("entity_id = ?", entityID).
		Where("revision_number = ?", number).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound.WithMessage(
				fmt.Sprintf("Revision %d of %s with ID %q does not exist", number, entityType, entityID))
		}
		r.log.Error("failed to get revision", logger.Error(err), slog.String("entity_id", entityID))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return &rev, nil
}

// Prune deletes revisions created before cutoff, always keeping the newest
// revision of each entity. It returns the number of deleted rows.
func (r *Repository) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.NewRaw(`
		DELETE FROM atlas.revisions AS rev
		WHERE rev.created_at < ?
		  AND rev.revision_number < (
		      SELECT max(latest.revision_number)
		      FROM atlas.revisions AS latest
		      WHERE latest.entity_type = rev.entity_type
		        AND latest.entity_id = rev.entity_id
		  )`, cutoff).Exec(ctx)
	if err != nil {
		r.log.Error("failed to prune revisions", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
