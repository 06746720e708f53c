package leaderboard

import (
	"context"

	"github.com/osse101/ContestBot_Go/internal/logger"
)

// ReconcileJob verifies running totals and recomputes them when they drift
type ReconcileJob struct {
	svc Service
}

// NewReconcileJob creates the periodic reconcile job
func NewReconcileJob(svc Service) *ReconcileJob {
	return &ReconcileJob{svc: svc}
}

// Process runs one verify pass and repairs on drift
func (j *ReconcileJob) Process(ctx context.Context) error {
	drifts, err := j.svc.Verify(ctx)
	if err != nil {
		return err
	}
	if len(drifts) == 0 {
		logger.FromContext(ctx).Debug(LogMsgReconcileClean)
		return nil
	}
	_, err = j.svc.Recompute(ctx)
	return err
}
