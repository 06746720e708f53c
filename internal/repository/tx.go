package repository

import (
	"context"
	"errors"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/logger"
)

// Tx is the commit/rollback half of a unit of work
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ErrTxClosed is returned by Commit or Rollback on a finished Tx.
// pgx.ErrTxClosed carries the same text.
var ErrTxClosed = errors.New(domain.ErrMsgTxClosed)

const LogMsgRollbackFailed = "Failed to rollback transaction"

// SafeRollback is deferred right after Begin. Once Commit has run the rollback
// reports a closed tx, which is expected and not logged.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || isTxClosed(err) {
		return
	}
	logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
}

func isTxClosed(err error) bool {
	return errors.Is(err, ErrTxClosed) || err.Error() == domain.ErrMsgTxClosed
}
