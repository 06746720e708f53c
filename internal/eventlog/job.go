package eventlog

import (
	"context"
	"time"

	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/metrics"
	"github.com/osse101/ContestBot_Go/internal/worker"
)

// NewCleanupJob returns a job that prunes event log rows older than retentionDays.
// A non-positive retention keeps everything and the job does nothing.
func NewCleanupJob(svc Service, retentionDays int) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		log := logger.FromContext(ctx)
		if retentionDays <= 0 {
			log.Debug(LogMsgCleanupDisabled)
			return nil
		}

		start := time.Now()
		deleted, err := svc.CleanupOldEvents(ctx, retentionDays)
		if err != nil {
			log.Error(LogMsgCleanupJobFailed, LogFieldError, err, LogFieldRetentionDays, retentionDays)
			return err
		}

		metrics.EventLogPruned.Add(float64(deleted))
		log.Info(LogMsgCleanupJobCompleted,
			LogFieldDeletedCount, deleted,
			LogFieldRetentionDays, retentionDays,
			LogFieldDuration, time.Since(start))
		return nil
	})
}
