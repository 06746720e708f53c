package memstore

import (
	"context"
	"sync/atomic"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

// ListTeamTotals returns every team's running total ordered by team ID
func (s *Store) ListTeamTotals(ctx context.Context) ([]domain.TeamTotal, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalsLocked(), nil
}

func (s *Store) totalsLocked() []domain.TeamTotal {
	teams := s.teamsLocked()
	out := make([]domain.TeamTotal, 0, len(teams))
	for _, t := range teams {
		out = append(out, domain.TeamTotal{
			TeamID:      t.ID,
			TeamName:    t.Name,
			TotalPoints: s.totalLocked(t.ID),
		})
	}
	return out
}

// GetTeamTotal returns the running total for one team
func (s *Store) GetTeamTotal(ctx context.Context, teamID string) (int64, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.teams[teamID]; !ok {
		return 0, domain.ErrTeamNotFound
	}
	return s.totalLocked(teamID), nil
}

// TallyApproved aggregates approved contributions without writing
func (s *Store) TallyApproved(ctx context.Context) ([]domain.TeamTally, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tallyLocked(), nil
}

// RecomputeTotals replaces every running total with the tally of approved contributions
// and returns the totals it replaced
func (s *Store) RecomputeTotals(ctx context.Context) ([]domain.TeamTotal, []domain.TeamTally, error) {
	if err := s.check(ctx); err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.totalsLocked()
	tallies := s.tallyLocked()
	for _, total := range s.totals {
		total.Store(0)
	}
	for _, t := range tallies {
		total, ok := s.totals[t.TeamID]
		if !ok {
			total = &atomic.Int64{}
			s.totals[t.TeamID] = total
		}
		total.Store(t.TotalPoints)
	}
	return before, tallies, nil
}

func (s *Store) tallyLocked() []domain.TeamTally {
	approved := make([]domain.Contribution, 0, len(s.contributions))
	for _, c := range s.contributions {
		if c.State == domain.StateApproved {
			approved = append(approved, *c)
		}
	}
	return domain.Tally(s.teamsLocked(), approved)
}

func (s *Store) totalLocked(teamID string) int64 {
	if total, ok := s.totals[teamID]; ok {
		return total.Load()
	}
	return 0
}

// SetRunningTotal overwrites a team's running total without touching contributions.
// Used by repair tooling and drift tests.
func (s *Store) SetRunningTotal(teamID string, v int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total, ok := s.totals[teamID]
	if !ok {
		total = &atomic.Int64{}
		s.totals[teamID] = total
	}
	total.Store(v)
}
