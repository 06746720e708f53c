package bootstrap

import (
	"github.com/osse101/ContestBot_Go/internal/config"
	"github.com/osse101/ContestBot_Go/internal/eventlog"
	"github.com/osse101/ContestBot_Go/internal/leaderboard"
	"github.com/osse101/ContestBot_Go/internal/scheduler"
	"github.com/osse101/ContestBot_Go/internal/worker"
)

// BackgroundJobs owns the pool and scheduler running periodic maintenance
type BackgroundJobs struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// StartBackgroundJobs schedules the leaderboard reconcile pass and event log cleanup.
// A zero interval disables the corresponding job.
func StartBackgroundJobs(cfg *config.Config, svcs *Services) *BackgroundJobs {
	pool := worker.NewPool(JobWorkers, JobQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(JobNameReconcile, cfg.ReconcileInterval, leaderboard.NewReconcileJob(svcs.Leaderboard))
	sched.Schedule(JobNameEventLogCleanup, cfg.EventLogCleanupEvery, eventlog.NewCleanupJob(svcs.EventLog, cfg.EventLogRetentionDays))

	return &BackgroundJobs{Pool: pool, Scheduler: sched}
}

// Stop stops scheduling, then drains the pool
func (b *BackgroundJobs) Stop() {
	if b == nil {
		return
	}
	b.Scheduler.Stop()
	b.Pool.Stop()
}
