package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

func newSeededStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateTeam(ctx, &domain.Team{ID: "red", Name: "Red"}))
	require.NoError(t, s.CreateTeam(ctx, &domain.Team{ID: "blue", Name: "Blue"}))
	_, err := s.UpsertParticipant(ctx, "u1", "Alice")
	require.NoError(t, err)
	_, err = s.AssignTeam(ctx, "u1", "red")
	require.NoError(t, err)
	return s
}

func pending(participant, team, key string, at time.Time) *domain.Contribution {
	return &domain.Contribution{
		ParticipantID: participant,
		TeamID:        team,
		Kind:          domain.KindArticle,
		Payload:       key,
		PayloadKey:    key,
		SubmittedAt:   at,
	}
}

func TestAssignTeam(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	prev, err := s.AssignTeam(ctx, "u1", "red")
	require.NoError(t, err, "same team is a no-op")
	assert.Equal(t, "red", prev)

	_, err = s.AssignTeam(ctx, "u1", "blue")
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)

	_, err = s.AssignTeam(ctx, "ghost", "red")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.UpsertParticipant(ctx, "u2", "")
	require.NoError(t, err)
	_, err = s.AssignTeam(ctx, "u2", "green")
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)

	prev, err = s.SetTeam(ctx, "u1", "blue")
	require.NoError(t, err)
	assert.Equal(t, "red", prev)

	p, err := s.GetParticipant(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "blue", p.TeamID)
}

func TestUpsertParticipant_KeepsTeam(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	p, err := s.UpsertParticipant(ctx, "u1", "Alicia")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", p.DisplayName)
	assert.Equal(t, "red", p.TeamID)

	p, err = s.UpsertParticipant(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", p.DisplayName)
}

func TestCreateTeam_Duplicate(t *testing.T) {
	s := newSeededStore(t)
	err := s.CreateTeam(context.Background(), &domain.Team{ID: "red", Name: "Again"})
	assert.ErrorIs(t, err, domain.ErrTeamExists)
}

func TestCreateContribution_DuplicateWindow(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	first := pending("u1", "red", "https://a.example/x", base)
	require.NoError(t, s.CreateContribution(ctx, first, time.Hour))
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, domain.StatePending, first.State)

	err := s.CreateContribution(ctx, pending("u1", "red", "https://a.example/x", base.Add(time.Minute)), time.Hour)
	assert.ErrorIs(t, err, domain.ErrDuplicatePayload)

	// Outside the window the same payload is accepted again
	require.NoError(t, s.CreateContribution(ctx, pending("u1", "red", "https://a.example/x", base.Add(2*time.Hour)), time.Hour))

	// Lifetime window blocks regardless of age
	err = s.CreateContribution(ctx, pending("u1", "red", "https://a.example/x", base.Add(48*time.Hour)), domain.LifetimeWindow)
	assert.ErrorIs(t, err, domain.ErrDuplicatePayload)
}

func TestCreateContribution_RejectedDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	now := time.Now()

	c := pending("u1", "red", "k", now)
	require.NoError(t, s.CreateContribution(ctx, c, 0))

	tx, err := s.BeginModerationTx(ctx)
	require.NoError(t, err)
	_, err = tx.TransitionIfPending(ctx, c.ID, domain.Transition{To: domain.StateRejected, ModeratorID: "m", DecidedAt: now})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	assert.NoError(t, s.CreateContribution(ctx, pending("u1", "red", "k", now.Add(time.Second)), 0))
}

func TestCreateContribution_ConcurrentIdentical(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	now := time.Now()

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.CreateContribution(ctx, pending("u1", "red", "same", now), 0)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrDuplicatePayload)
	}
	assert.Equal(t, 1, succeeded)
}

func TestListPendingPage_KeysetOrder(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Two share a timestamp so ID breaks the tie
	require.NoError(t, s.CreateContribution(ctx, pending("u1", "red", "c", base.Add(2*time.Second)), 0))
	require.NoError(t, s.CreateContribution(ctx, pending("u1", "red", "a", base), 0))
	require.NoError(t, s.CreateContribution(ctx, pending("u1", "red", "b", base), 0))

	page, err := s.ListPendingPage(ctx, domain.PendingFilter{}, nil, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, []int64{2, 3}, []int64{page[0].ID, page[1].ID})

	cursor := &domain.PendingCursor{SubmittedAt: page[1].SubmittedAt, ID: page[1].ID}
	page, err = s.ListPendingPage(ctx, domain.PendingFilter{}, cursor, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(1), page[0].ID)

	page, err = s.ListPendingPage(ctx, domain.PendingFilter{Kind: domain.KindPhoto}, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestModerationTx_CommitAppliesTogether(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	c := pending("u1", "red", "k", time.Now())
	require.NoError(t, s.CreateContribution(ctx, c, 0))

	tx, err := s.BeginModerationTx(ctx)
	require.NoError(t, err)
	updated, err := tx.TransitionIfPending(ctx, c.ID, domain.Transition{
		To: domain.StateApproved, ModeratorID: "m", DecidedAt: time.Now(), AwardedPoints: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StateApproved, updated.State)

	total, err := tx.IncrementTeamTotal(ctx, "red", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)

	// Nothing visible before commit
	got, err := s.GetContribution(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatePending, got.State)
	running, err := s.GetTeamTotal(ctx, "red")
	require.NoError(t, err)
	assert.Zero(t, running)

	require.NoError(t, tx.Commit(ctx))
	assert.Error(t, tx.Rollback(ctx), "rollback after commit reports a closed tx")

	got, err = s.GetContribution(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateApproved, got.State)
	assert.Equal(t, int64(10), got.AwardedPoints)
	running, err = s.GetTeamTotal(ctx, "red")
	require.NoError(t, err)
	assert.Equal(t, int64(10), running)
}

func TestModerationTx_RollbackDiscards(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	c := pending("u1", "red", "k", time.Now())
	require.NoError(t, s.CreateContribution(ctx, c, 0))

	tx, err := s.BeginModerationTx(ctx)
	require.NoError(t, err)
	_, err = tx.TransitionIfPending(ctx, c.ID, domain.Transition{To: domain.StateApproved, ModeratorID: "m", DecidedAt: time.Now(), AwardedPoints: 5})
	require.NoError(t, err)
	_, err = tx.IncrementTeamTotal(ctx, "red", 5)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	got, err := s.GetContribution(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatePending, got.State)
	total, err := s.GetTeamTotal(ctx, "red")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestModerationTx_AlreadyDecidedAndMissing(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	c := pending("u1", "red", "k", time.Now())
	require.NoError(t, s.CreateContribution(ctx, c, 0))

	decide := func(to domain.ContributionState, pts int64) error {
		tx, err := s.BeginModerationTx(ctx)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback(ctx) }()
		if _, err := tx.TransitionIfPending(ctx, c.ID, domain.Transition{To: to, ModeratorID: "m", DecidedAt: time.Now(), AwardedPoints: pts}); err != nil {
			return err
		}
		return tx.Commit(ctx)
	}

	require.NoError(t, decide(domain.StateRejected, 0))
	assert.ErrorIs(t, decide(domain.StateApproved, 10), domain.ErrAlreadyDecided)

	tx, err := s.BeginModerationTx(ctx)
	require.NoError(t, err)
	_, err = tx.TransitionIfPending(ctx, 999, domain.Transition{To: domain.StateRejected})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, tx.Rollback(ctx))
}

func TestModerationTx_ConcurrentDecidesOneWins(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	c := pending("u1", "red", "k", time.Now())
	require.NoError(t, s.CreateContribution(ctx, c, 0))

	const n = 32
	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tx, err := s.BeginModerationTx(ctx)
			if err != nil {
				results[i] = err
				return
			}
			if _, err := tx.TransitionIfPending(ctx, c.ID, domain.Transition{
				To: domain.StateApproved, ModeratorID: "m", DecidedAt: time.Now(), AwardedPoints: 10,
			}); err != nil {
				_ = tx.Rollback(ctx)
				results[i] = err
				return
			}
			if _, err := tx.IncrementTeamTotal(ctx, "red", 10); err != nil {
				_ = tx.Rollback(ctx)
				results[i] = err
				return
			}
			results[i] = tx.Commit(ctx)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
	}
	assert.Equal(t, 1, wins)

	total, err := s.GetTeamTotal(ctx, "red")
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)
}

func TestRecomputeTotals_RepairsDrift(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	c := pending("u1", "red", "k", time.Now())
	require.NoError(t, s.CreateContribution(ctx, c, 0))

	tx, err := s.BeginModerationTx(ctx)
	require.NoError(t, err)
	_, err = tx.TransitionIfPending(ctx, c.ID, domain.Transition{To: domain.StateApproved, ModeratorID: "m", DecidedAt: time.Now(), AwardedPoints: 10})
	require.NoError(t, err)
	_, err = tx.IncrementTeamTotal(ctx, "red", 10)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	s.SetRunningTotal("red", 999)
	s.SetRunningTotal("blue", 3)

	before, tallies, err := s.RecomputeTotals(ctx)
	require.NoError(t, err)
	require.Len(t, tallies, 2)
	assert.Equal(t, []domain.TeamTotal{
		{TeamID: "blue", TeamName: "Blue", TotalPoints: 3},
		{TeamID: "red", TeamName: "Red", TotalPoints: 999},
	}, before)

	totals, err := s.ListTeamTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TeamTotal{
		{TeamID: "blue", TeamName: "Blue", TotalPoints: 0},
		{TeamID: "red", TeamName: "Red", TotalPoints: 10},
	}, totals)
}

func TestUnavailable(t *testing.T) {
	s := newSeededStore(t)
	s.SetUnavailable(true)

	_, err := s.GetParticipant(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.ErrorIs(t, s.Ping(context.Background()), domain.ErrStorageUnavailable)

	s.SetUnavailable(false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.ListTeams(ctx)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestEventLog_FilterAndCleanup(t *testing.T) {
	ctx := context.Background()
	l := NewEventLog()
	now := time.Now()
	l.now = func() time.Time { return now.Add(-40 * 24 * time.Hour) }

	u1 := "u1"
	require.NoError(t, l.LogEvent(ctx, "contribution.submitted", &u1, map[string]interface{}{"id": 1}, nil))
	l.now = func() time.Time { return now }
	require.NoError(t, l.LogEvent(ctx, "contribution.decided", &u1, map[string]interface{}{"id": 1}, nil))
	require.NoError(t, l.LogEvent(ctx, "leaderboard.recomputed", nil, map[string]interface{}{}, nil))

	all, err := l.GetEvents(ctx, repository.EventLogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "leaderboard.recomputed", all[0].EventType, "newest first")

	mine, err := l.GetEvents(ctx, repository.EventLogFilter{ParticipantID: &u1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "contribution.decided", mine[0].EventType)

	removed, err := l.CleanupOldEvents(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
