package scheduler

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
)

// TaskFunc is the function signature for scheduled tasks
type TaskFunc func(ctx context.Context) error

// taskTimeout bounds a single run of any task.
const taskTimeout = 10 * time.Minute

type entry struct {
	id       cron.EntryID
	schedule string
}

// Scheduler runs maintenance tasks on cron schedules (seconds precision) or
// fixed intervals. Runs of the same task never overlap.
type Scheduler struct {
	cron    *cron.Cron
	log     *slog.Logger
	mu      sync.RWMutex
	tasks   map[string]entry
	running bool
}

// NewScheduler creates a new scheduler
func NewScheduler(log *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:   log.With(logger.Scope("scheduler")),
		tasks: make(map[string]entry),
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.cron.Start()
	s.running = true
	s.log.Info("scheduler started", slog.Int("tasks", len(s.tasks)))
	return nil
}

// Stop waits for running tasks until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	select {
	case <-s.cron.Stop().Done():
		s.log.Info("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
	s.running = false
	return nil
}

// AddCronTask adds a task with a cron expression
// ("second minute hour day-of-month month day-of-week").
func (s *Scheduler) AddCronTask(name, schedule string, task TaskFunc) error {
	return s.add(name, schedule, task)
}

// AddIntervalTask adds a task that runs every interval
func (s *Scheduler) AddIntervalTask(name string, interval time.Duration, task TaskFunc) error {
	return s.add(name, "@every "+interval.String(), task)
}

func (s *Scheduler) add(name, schedule string, task TaskFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.tasks[name]; ok {
		s.cron.Remove(old.id)
		delete(s.tasks, name)
	}
	id, err := s.cron.AddFunc(schedule, func() { s.RunNow(name, task) })
	if err != nil {
		return err
	}
	s.tasks[name] = entry{id: id, schedule: schedule}
	s.log.Info("added task", slog.String("name", name), slog.String("schedule", schedule))
	return nil
}

// RemoveTask removes a scheduled task
func (s *Scheduler) RemoveTask(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.tasks[name]; ok {
		s.cron.Remove(e.id)
		delete(s.tasks, name)
	}
}

// RunNow executes task synchronously and records the outcome.
func (s *Scheduler) RunNow(name string, task TaskFunc) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	if err := task(ctx); err != nil {
		metrics.TaskRuns.WithLabelValues(name, "error").Inc()
		s.log.Error("scheduled task failed",
			slog.String("name", name),
			logger.Error(err),
			slog.Duration("duration", time.Since(start)))
		return
	}
	metrics.TaskRuns.WithLabelValues(name, "ok").Inc()
	s.log.Debug("scheduled task completed",
		slog.String("name", name),
		slog.Duration("duration", time.Since(start)))
}

// TaskInfo describes a registered task
type TaskInfo struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	NextRun  time.Time `json:"nextRun"`
	PrevRun  time.Time `json:"prevRun,omitempty"`
}

// Tasks returns the registered tasks sorted by name
func (s *Scheduler) Tasks() []TaskInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TaskInfo, 0, len(s.tasks))
	for name, e := range s.tasks {
		ce := s.cron.Entry(e.id)
		out = append(out, TaskInfo{Name: name, Schedule: e.schedule, NextRun: ce.Next, PrevRun: ce.Prev})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
