package memstore

import (
	"context"
	"sync/atomic"

	"github.com/osse101/ContestBot_Go/internal/concurrency"
	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

// moderationTx holds the contribution lock from TransitionIfPending until Commit or Rollback.
// Changes are staged and published together under the store write lock.
type moderationTx struct {
	s       *Store
	unlocks []func()
	staged  []*domain.Contribution
	deltas  map[string]int64
	closed  bool
}

func (tx *moderationTx) TransitionIfPending(ctx context.Context, id int64, t domain.Transition) (*domain.Contribution, error) {
	if tx.closed {
		return nil, repository.ErrTxClosed
	}
	if err := tx.s.check(ctx); err != nil {
		return nil, err
	}

	unlock := tx.s.locks.Lock(concurrency.ContributionKey(id))
	tx.unlocks = append(tx.unlocks, unlock)

	tx.s.mu.RLock()
	current, ok := tx.s.contributions[id]
	var c *domain.Contribution
	if ok {
		c = copyContribution(current)
	}
	tx.s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrContributionNotFound
	}
	if c.State != domain.StatePending {
		return nil, domain.ErrAlreadyDecided
	}

	decidedAt := t.DecidedAt
	c.State = t.To
	c.ModeratorID = t.ModeratorID
	c.DecidedAt = &decidedAt
	c.RejectReason = t.Reason
	c.AwardedPoints = t.AwardedPoints
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tx.staged = append(tx.staged, c)
	return copyContribution(c), nil
}

func (tx *moderationTx) IncrementTeamTotal(ctx context.Context, teamID string, delta int64) (int64, error) {
	if tx.closed {
		return 0, repository.ErrTxClosed
	}
	if err := tx.s.check(ctx); err != nil {
		return 0, err
	}
	tx.deltas[teamID] += delta

	tx.s.mu.RLock()
	var current int64
	if total, ok := tx.s.totals[teamID]; ok {
		current = total.Load()
	}
	tx.s.mu.RUnlock()
	return current + tx.deltas[teamID], nil
}

func (tx *moderationTx) Commit(ctx context.Context) error {
	if tx.closed {
		return repository.ErrTxClosed
	}
	defer tx.release()

	if err := tx.s.check(ctx); err != nil {
		return err
	}

	tx.s.mu.Lock()
	for _, c := range tx.staged {
		tx.s.contributions[c.ID] = c
	}
	for teamID, delta := range tx.deltas {
		total, ok := tx.s.totals[teamID]
		if !ok {
			total = &atomic.Int64{}
			tx.s.totals[teamID] = total
		}
		total.Add(delta)
	}
	tx.s.mu.Unlock()
	return nil
}

func (tx *moderationTx) Rollback(ctx context.Context) error {
	if tx.closed {
		return repository.ErrTxClosed
	}
	tx.release()
	return nil
}

func (tx *moderationTx) release() {
	tx.closed = true
	for i := len(tx.unlocks) - 1; i >= 0; i-- {
		tx.unlocks[i]()
	}
	tx.unlocks = nil
	tx.staged = nil
}
