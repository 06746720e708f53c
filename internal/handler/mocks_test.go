package handler

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/moderation"
	"github.com/osse101/ContestBot_Go/internal/registry"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) Resolve(ctx context.Context, participantID string) (*domain.Participant, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func (m *MockRegistryService) Register(ctx context.Context, participantID, displayName string) (*domain.Participant, error) {
	args := m.Called(ctx, participantID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func (m *MockRegistryService) AssignTeam(ctx context.Context, participantID, teamID string) error {
	return m.Called(ctx, participantID, teamID).Error(0)
}

func (m *MockRegistryService) OverrideTeam(ctx context.Context, participantID, teamID string) error {
	return m.Called(ctx, participantID, teamID).Error(0)
}

func (m *MockRegistryService) CreateTeam(ctx context.Context, teamID, name string) (*domain.Team, error) {
	args := m.Called(ctx, teamID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockRegistryService) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockRegistryService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	args := m.Called(ctx)
	teams, _ := args.Get(0).([]domain.Team)
	return teams, args.Error(1)
}

func (m *MockRegistryService) ImportParticipants(ctx context.Context, rows []domain.ImportRow) []domain.ImportResult {
	return m.Called(ctx, rows).Get(0).([]domain.ImportResult)
}

func (m *MockRegistryService) GetCacheStats() registry.CacheStats {
	return m.Called().Get(0).(registry.CacheStats)
}

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, participantID string, kind domain.ContributionKind, payload, caption string) (*domain.Contribution, error) {
	args := m.Called(ctx, participantID, kind, payload, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

func (m *MockSubmissionService) Get(ctx context.Context, id int64) (*domain.Contribution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

// ListPending yields the configured contributions, then the configured error if any
func (m *MockSubmissionService) ListPending(ctx context.Context, filter domain.PendingFilter) iter.Seq2[domain.Contribution, error] {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]domain.Contribution)
	err := args.Error(1)
	return func(yield func(domain.Contribution, error) bool) {
		for _, c := range items {
			if !yield(c, nil) {
				return
			}
		}
		if err != nil {
			yield(domain.Contribution{}, err)
		}
	}
}

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) Decide(ctx context.Context, decision domain.ModerationDecision) (*moderation.Outcome, error) {
	args := m.Called(ctx, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moderation.Outcome), args.Error(1)
}

type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) CurrentStanding(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]domain.LeaderboardEntry)
	return entries, args.Error(1)
}

func (m *MockLeaderboardService) TeamTotal(ctx context.Context, teamID string) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaderboardService) Recompute(ctx context.Context) ([]domain.TeamTally, error) {
	args := m.Called(ctx)
	tallies, _ := args.Get(0).([]domain.TeamTally)
	return tallies, args.Error(1)
}

func (m *MockLeaderboardService) Verify(ctx context.Context) ([]domain.Drift, error) {
	args := m.Called(ctx)
	drift, _ := args.Get(0).([]domain.Drift)
	return drift, args.Error(1)
}

func (m *MockLeaderboardService) Breakdown(ctx context.Context) ([]domain.TeamTally, error) {
	args := m.Called(ctx)
	tallies, _ := args.Get(0).([]domain.TeamTally)
	return tallies, args.Error(1)
}

type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(bus event.Bus) error {
	return m.Called(bus).Error(0)
}

func (m *MockEventLogService) RecentEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	args := m.Called(ctx, filter)
	entries, _ := args.Get(0).([]repository.EventLogEntry)
	return entries, args.Error(1)
}

func (m *MockEventLogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}
