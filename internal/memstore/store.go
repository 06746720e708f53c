// Package memstore is an in-process implementation of the contest repositories.
// It backs single-process runs and service tests. Contention is per participant on
// submission and per contribution on moderation; there is no global decision lock.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/ContestBot_Go/internal/concurrency"
	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store holds all contest state in memory
type Store struct {
	mu            sync.RWMutex
	participants  map[string]*domain.Participant
	teams         map[string]*domain.Team
	contributions map[int64]*domain.Contribution
	byParticipant map[string][]int64
	totals        map[string]*atomic.Int64

	nextID atomic.Int64
	locks  *concurrency.LockManager
	now    func() time.Time

	unavailable atomic.Bool
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty Store
func New(opts ...Option) *Store {
	s := &Store{
		participants:  make(map[string]*domain.Participant),
		teams:         make(map[string]*domain.Team),
		contributions: make(map[int64]*domain.Contribution),
		byParticipant: make(map[string][]int64),
		totals:        make(map[string]*atomic.Int64),
		locks:         concurrency.NewLockManager(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetUnavailable makes every operation fail with domain.ErrStorageUnavailable
func (s *Store) SetUnavailable(v bool) {
	s.unavailable.Store(v)
}

func (s *Store) check(ctx context.Context) error {
	if s.unavailable.Load() {
		return domain.ErrStorageUnavailable
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Ping reports whether the store is serving
func (s *Store) Ping(ctx context.Context) error {
	return s.check(ctx)
}

// GetParticipant returns a copy of the participant
func (s *Store) GetParticipant(ctx context.Context, participantID string) (*domain.Participant, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participants[participantID]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	cp := *p
	return &cp, nil
}

// UpsertParticipant creates the participant or refreshes a non-empty display name
func (s *Store) UpsertParticipant(ctx context.Context, participantID, displayName string) (*domain.Participant, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p, ok := s.participants[participantID]
	if !ok {
		p = &domain.Participant{
			ID:          participantID,
			DisplayName: displayName,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		s.participants[participantID] = p
	} else if displayName != "" && displayName != p.DisplayName {
		p.DisplayName = displayName
		p.UpdatedAt = now
	}
	cp := *p
	return &cp, nil
}

// AssignTeam sets the team once; the same team again is a no-op
func (s *Store) AssignTeam(ctx context.Context, participantID, teamID string) (string, error) {
	return s.setTeam(ctx, participantID, teamID, false)
}

// SetTeam reassigns unconditionally
func (s *Store) SetTeam(ctx context.Context, participantID, teamID string) (string, error) {
	return s.setTeam(ctx, participantID, teamID, true)
}

func (s *Store) setTeam(ctx context.Context, participantID, teamID string, override bool) (string, error) {
	if err := s.check(ctx); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[participantID]
	if !ok {
		return "", domain.ErrParticipantNotFound
	}
	if _, ok := s.teams[teamID]; !ok {
		return "", domain.ErrTeamNotFound
	}

	previous := p.TeamID
	if previous == teamID {
		return previous, nil
	}
	if previous != "" && !override {
		return previous, domain.ErrAlreadyAssigned
	}
	p.TeamID = teamID
	p.UpdatedAt = s.now()
	return previous, nil
}

// CreateTeam registers a team with a zero running total
func (s *Store) CreateTeam(ctx context.Context, team *domain.Team) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[team.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrTeamExists, team.ID)
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = s.now()
	}
	cp := *team
	s.teams[team.ID] = &cp
	if _, ok := s.totals[team.ID]; !ok {
		s.totals[team.ID] = &atomic.Int64{}
	}
	return nil
}

// GetTeam returns a copy of the team
func (s *Store) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	cp := *t
	return &cp, nil
}

// ListTeams returns all teams ordered by ID
func (s *Store) ListTeams(ctx context.Context) ([]domain.Team, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teamsLocked(), nil
}

func (s *Store) teamsLocked() []domain.Team {
	out := make([]domain.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
