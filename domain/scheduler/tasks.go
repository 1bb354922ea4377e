package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/emergent-company/atlas/pkg/logger"
)

// TagCleaner deletes tags no algorithm or implementation links to.
type TagCleaner interface {
	CleanupOrphans(ctx context.Context, cutoff time.Time) (int64, error)
}

// RevisionPruner deletes revisions older than a cutoff.
type RevisionPruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// TagCleanupTask removes orphaned tags left behind by unlinks and deletes.
// Tags younger than grace are left alone.
type TagCleanupTask struct {
	tags  TagCleaner
	grace time.Duration
	now   func() time.Time
	log   *slog.Logger
}

func NewTagCleanupTask(tags TagCleaner, grace time.Duration, log *slog.Logger) *TagCleanupTask {
	return &TagCleanupTask{
		tags:  tags,
		grace: grace,
		now:   time.Now,
		log:   log.With(logger.Scope("scheduler.tag_cleanup")),
	}
}

func (t *TagCleanupTask) Run(ctx context.Context) error {
	n, err := t.tags.CleanupOrphans(ctx, t.now().Add(-t.grace))
	if err != nil {
		return err
	}
	if n > 0 {
		t.log.Info("removed orphaned tags", slog.Int64("count", n))
	}
	return nil
}

// RevisionPruneTask drops revisions past the retention window. The newest
// revision of every entity is always kept.
type RevisionPruneTask struct {
	revisions RevisionPruner
	retention time.Duration
	now       func() time.Time
	log       *slog.Logger
}

func NewRevisionPruneTask(revisions RevisionPruner, retention time.Duration, log *slog.Logger) *RevisionPruneTask {
	return &RevisionPruneTask{
		revisions: revisions,
		retention: retention,
		now:       time.Now,
		log:       log.With(logger.Scope("scheduler.revision_prune")),
	}
}

func (t *RevisionPruneTask) Run(ctx context.Context) error {
	if t.retention <= 0 {
		return nil
	}
	cutoff := t.now().Add(-t.retention)
	n, err := t.revisions.Prune(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		t.log.Info("pruned revisions", slog.Int64("count", n), slog.Time("cutoff", cutoff))
	}
	return nil
}
