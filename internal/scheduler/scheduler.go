package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/metrics"
	"github.com/osse101/ContestBot_Go/internal/worker"
)

const (
	LogMsgJobDisabled     = "Scheduled job disabled"
	LogMsgJobScheduled    = "Scheduled job registered"
	LogMsgJobSkipped      = "Scheduled job skipped, worker queue full"
	LogMsgJobStillRunning = "Scheduled job skipped, previous run not finished"
)

// Scheduler enqueues named jobs onto a worker pool at fixed intervals.
// A job never overlaps with its own previous run.
type Scheduler struct {
	pool     *worker.Pool
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a scheduler feeding pool
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

type entry struct {
	name string
	job  worker.Job
	busy atomic.Bool
}

func (e *entry) Process(ctx context.Context) error {
	defer e.busy.Store(false)

	start := time.Now()
	err := e.job.Process(ctx)
	metrics.ObserveJob(e.name, time.Since(start), err)
	return err
}

// Schedule runs job every interval. A non-positive interval disables it.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	if interval <= 0 {
		logger.Info(LogMsgJobDisabled, "job", name)
		return
	}
	logger.Info(LogMsgJobScheduled, "job", name, "interval", interval)

	e := &entry{name: name, job: job}
	s.wg.Add(1)
	go s.loop(e, interval)
}

func (s *Scheduler) loop(e *entry, interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.fire(e)
		case <-s.quit:
			return
		}
	}
}

// fire never blocks the ticker: a busy job or a full queue skips the tick
func (s *Scheduler) fire(e *entry) {
	if !e.busy.CompareAndSwap(false, true) {
		logger.Debug(LogMsgJobStillRunning, "job", e.name)
		return
	}
	if !s.pool.TryEnqueue(e) {
		e.busy.Store(false)
		logger.Warn(LogMsgJobSkipped, "job", e.name)
	}
}

// Stop stops all scheduled jobs. Runs already queued still complete on the pool.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
