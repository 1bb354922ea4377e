package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context) error { return nil }

func TestScheduler_AddAndList(t *testing.T) {
	s := NewScheduler(slog.Default())
	assert.Empty(t, s.Tasks())

	require.NoError(t, s.AddIntervalTask("tag_cleanup", time.Hour, noop))
	require.NoError(t, s.AddCronTask("revision_prune", "0 30 3 * * *", noop))

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "revision_prune", tasks[0].Name)
	assert.Equal(t, "0 30 3 * * *", tasks[0].Schedule)
	assert.Equal(t, "tag_cleanup", tasks[1].Name)
	assert.Equal(t, "@every 1h0m0s", tasks[1].Schedule)
}

func TestScheduler_ReplaceExisting(t *testing.T) {
	s := NewScheduler(slog.Default())
	require.NoError(t, s.AddIntervalTask("tag_cleanup", time.Hour, noop))
	require.NoError(t, s.AddIntervalTask("tag_cleanup", time.Minute, noop))

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "@every 1m0s", tasks[0].Schedule)

	s.RemoveTask("tag_cleanup")
	assert.Empty(t, s.Tasks())
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := NewScheduler(slog.Default())
	assert.Error(t, s.AddCronTask("bad", "every tuesday", noop))
	assert.Empty(t, s.Tasks())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(slog.Default())
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	require.NoError(t, s.Start(ctx))

	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.IsRunning())
	require.NoError(t, s.Stop(ctx))
}

func TestAddScheduledTask(t *testing.T) {
	log := slog.Default()

	t.Run("cron overrides interval", func(t *testing.T) {
		s := NewScheduler(log)
		require.NoError(t, addScheduledTask(s, log, "prune", "0 0 2 * * *", time.Hour, noop))
		assert.Equal(t, "0 0 2 * * *", s.Tasks()[0].Schedule)
	})

	t.Run("empty schedule falls back to interval", func(t *testing.T) {
		s := NewScheduler(log)
		require.NoError(t, addScheduledTask(s, log, "prune", "", 5*time.Minute, noop))
		assert.Equal(t, "@every 5m0s", s.Tasks()[0].Schedule)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		s := NewScheduler(log)
		assert.Error(t, addScheduledTask(s, log, "prune", "nope", time.Hour, noop))
	})
}

type fakeTags struct {
	n      int64
	err    error
	cutoff time.Time
}

func (f *fakeTags) CleanupOrphans(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

type fakePruner struct {
	cutoff time.Time
	calls  int
}

func (f *fakePruner) Prune(_ context.Context, cutoff time.Time) (int64, error) {
	f.calls++
	f.cutoff = cutoff
	return 3, nil
}

func TestTagCleanupTask(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tags := &fakeTags{n: 2}
	task := NewTagCleanupTask(tags, 24*time.Hour, slog.Default())
	task.now = func() time.Time { return now }

	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC), tags.cutoff)

	boom := errors.New("boom")
	assert.ErrorIs(t, NewTagCleanupTask(&fakeTags{err: boom}, time.Hour, slog.Default()).Run(context.Background()), boom)
}

func TestRevisionPruneTask(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &fakePruner{}
	task := NewRevisionPruneTask(p, 30*24*time.Hour, slog.Default())
	task.now = func() time.Time { return now }

	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC), p.cutoff)
}

func TestRevisionPruneTask_NoRetention(t *testing.T) {
	p := &fakePruner{}
	require.NoError(t, NewRevisionPruneTask(p, 0, slog.Default()).Run(context.Background()))
	assert.Zero(t, p.calls)
}

func TestRunNow_RecordsFailure(t *testing.T) {
	s := NewScheduler(slog.Default())
	called := false
	s.RunNow("failing", func(context.Context) error {
		called = true
		return errors.New("boom")
	})
	assert.True(t, called)
}
