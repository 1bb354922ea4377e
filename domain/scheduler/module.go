// Package scheduler runs background catalog maintenance: orphaned tag
// cleanup and revision pruning.
package scheduler

import (
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/emergent-company/atlas/domain/revisions"
	"github.com/emergent-company/atlas/domain/tags"
	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/pkg/logger"
)

// Module provides scheduled task functionality
var Module = fx.Module("scheduler",
	fx.Provide(NewScheduler),
	fx.Invoke(
		RegisterTasks,
		RegisterSchedulerLifecycle,
	),
)

// TaskParams contains dependencies for creating scheduled tasks
type TaskParams struct {
	fx.In
	Scheduler *Scheduler
	Config    *config.Config
	Tags      *tags.Service
	Revisions *revisions.Repository
	Log       *slog.Logger
}

// RegisterTasks registers all scheduled tasks
func RegisterTasks(p TaskParams) error {
	cfg := p.Config.Scheduler
	if !cfg.Enabled {
		p.Log.Info("scheduler disabled, skipping task registration")
		return nil
	}

	tagCleanup := NewTagCleanupTask(p.Tags, cfg.TagOrphanGrace, p.Log)
	if err := addScheduledTask(p.Scheduler, p.Log, "tag_cleanup", "", cfg.TagCleanupInterval, tagCleanup.Run); err != nil {
		return err
	}

	prune := NewRevisionPruneTask(p.Revisions, cfg.RevisionRetention(), p.Log)
	if err := addScheduledTask(p.Scheduler, p.Log, "revision_prune", cfg.RevisionPruneSchedule, 24*time.Hour, prune.Run); err != nil {
		return err
	}

	p.Log.Info("registered scheduled tasks", slog.Int("count", len(p.Scheduler.Tasks())))
	return nil
}

// addScheduledTask prefers a cron schedule and falls back to the interval when
// the schedule is empty.
func addScheduledTask(s *Scheduler, log *slog.Logger, name, schedule string, interval time.Duration, task TaskFunc) error {
	if schedule != "" {
		if err := s.AddCronTask(name, schedule, task); err != nil {
			log.Error("invalid task schedule", slog.String("name", name), slog.String("schedule", schedule), logger.Error(err))
			return err
		}
		return nil
	}
	return s.AddIntervalTask(name, interval, task)
}

// RegisterSchedulerLifecycle registers the scheduler with fx lifecycle
func RegisterSchedulerLifecycle(lc fx.Lifecycle, s *Scheduler, cfg *config.Config) {
	if !cfg.Scheduler.Enabled {
		return
	}
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.Stop,
	})
}
