package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/osse101/ContestBot_Go/internal/concurrency"
	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

// CreateContribution inserts a pending contribution after the duplicate check.
// Both run under the participant's lock so concurrent identical submissions cannot both pass.
func (s *Store) CreateContribution(ctx context.Context, c *domain.Contribution, window time.Duration) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	unlock := s.locks.Lock(concurrency.ParticipantKey(c.ParticipantID))
	defer unlock()

	if c.SubmittedAt.IsZero() {
		c.SubmittedAt = s.now()
	}

	s.mu.RLock()
	dup := s.findDuplicateLocked(c, window)
	s.mu.RUnlock()
	if dup != nil {
		return fmt.Errorf("%w: matches contribution %d", domain.ErrDuplicatePayload, dup.ID)
	}

	c.ID = s.nextID.Add(1)
	c.State = domain.StatePending
	c.AwardedPoints = 0

	cp := *c
	s.mu.Lock()
	s.contributions[cp.ID] = &cp
	s.byParticipant[cp.ParticipantID] = append(s.byParticipant[cp.ParticipantID], cp.ID)
	s.mu.Unlock()
	return nil
}

func (s *Store) findDuplicateLocked(c *domain.Contribution, window time.Duration) *domain.Contribution {
	var cutoff time.Time
	if window > 0 {
		cutoff = c.SubmittedAt.Add(-window)
	}
	for _, id := range s.byParticipant[c.ParticipantID] {
		existing := s.contributions[id]
		if existing.PayloadKey != c.PayloadKey || existing.State == domain.StateRejected {
			continue
		}
		if window > 0 && existing.SubmittedAt.Before(cutoff) {
			continue
		}
		return existing
	}
	return nil
}

// GetContribution returns a copy of the contribution
func (s *Store) GetContribution(ctx context.Context, id int64) (*domain.Contribution, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contributions[id]
	if !ok {
		return nil, domain.ErrContributionNotFound
	}
	return copyContribution(c), nil
}

// ListPendingPage returns the next keyset page of pending contributions
func (s *Store) ListPendingPage(ctx context.Context, filter domain.PendingFilter, after *domain.PendingCursor, limit int) ([]domain.Contribution, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = domain.DefaultPendingPageSize
	}

	s.mu.RLock()
	page := make([]domain.Contribution, 0, limit)
	for _, c := range s.contributions {
		if c.State != domain.StatePending || !filter.Matches(c) {
			continue
		}
		if after != nil && !after.After(c) {
			continue
		}
		page = append(page, *copyContribution(c))
	}
	s.mu.RUnlock()

	sort.Slice(page, func(i, j int) bool {
		if page[i].SubmittedAt.Equal(page[j].SubmittedAt) {
			return page[i].ID < page[j].ID
		}
		return page[i].SubmittedAt.Before(page[j].SubmittedAt)
	})
	if len(page) > limit {
		page = page[:limit]
	}
	return page, nil
}

// BeginModerationTx starts a staged moderation unit
func (s *Store) BeginModerationTx(ctx context.Context) (repository.ModerationTx, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	return &moderationTx{s: s, deltas: make(map[string]int64)}, nil
}

func copyContribution(c *domain.Contribution) *domain.Contribution {
	cp := *c
	if c.DecidedAt != nil {
		t := *c.DecidedAt
		cp.DecidedAt = &t
	}
	return &cp
}
