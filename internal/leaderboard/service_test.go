package leaderboard

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/memstore"
	"github.com/osse101/ContestBot_Go/internal/metrics"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

var seq int

// approve stores an approved contribution and credits the running total like the moderation engine does
func approve(t *testing.T, store *memstore.Store, participant, team string, kind domain.ContributionKind, points int64) {
	t.Helper()
	ctx := context.Background()
	seq++
	c := &domain.Contribution{
		ParticipantID: participant,
		TeamID:        team,
		Kind:          kind,
		Payload:       fmt.Sprintf("item-%d", seq),
		PayloadKey:    fmt.Sprintf("item-%d", seq),
	}
	require.NoError(t, store.CreateContribution(ctx, c, domain.LifetimeWindow))

	tx, err := store.BeginModerationTx(ctx)
	require.NoError(t, err)
	_, err = tx.TransitionIfPending(ctx, c.ID, domain.Transition{To: domain.StateApproved, ModeratorID: "mod", DecidedAt: time.Now(), AwardedPoints: points})
	require.NoError(t, err)
	_, err = tx.IncrementTeamTotal(ctx, team, points)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
}

func setupStore(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	for _, id := range []string{"red", "blue", "green"} {
		require.NoError(t, store.CreateTeam(ctx, &domain.Team{ID: id, Name: id}))
	}
	for _, p := range []struct{ id, team string }{{"alice", "red"}, {"bob", "blue"}} {
		_, err := store.UpsertParticipant(ctx, p.id, p.id)
		require.NoError(t, err)
		_, err = store.AssignTeam(ctx, p.id, p.team)
		require.NoError(t, err)
	}
	return store
}

func TestCurrentStanding(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store, nil)
	ctx := context.Background()

	approve(t, store, "alice", "red", domain.KindArticle, 10)
	approve(t, store, "bob", "blue", domain.KindPhoto, 5)
	approve(t, store, "bob", "blue", domain.KindPhoto, 5)

	standing, err := svc.CurrentStanding(ctx)
	require.NoError(t, err)
	require.Len(t, standing, 3, "teams without points are listed")

	assert.Equal(t, domain.LeaderboardEntry{TeamID: "blue", TeamName: "blue", TotalPoints: 10, Rank: 1}, standing[0])
	assert.Equal(t, domain.LeaderboardEntry{TeamID: "red", TeamName: "red", TotalPoints: 10, Rank: 1}, standing[1])
	assert.Equal(t, domain.LeaderboardEntry{TeamID: "green", TeamName: "green", TotalPoints: 0, Rank: 3}, standing[2])
}

func TestTeamTotal(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store, nil)
	ctx := context.Background()

	approve(t, store, "alice", "red", domain.KindArticle, 10)

	total, err := svc.TeamTotal(ctx, "red")
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)

	total, err = svc.TeamTotal(ctx, "green")
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = svc.TeamTotal(ctx, "purple")
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestRecompute_RepairsDrift(t *testing.T) {
	store := setupStore(t)
	pub := &recordingPublisher{}
	svc := NewService(store, pub)
	ctx := context.Background()

	approve(t, store, "alice", "red", domain.KindArticle, 10)
	approve(t, store, "alice", "red", domain.KindPhoto, 5)
	store.SetRunningTotal("red", 999)
	store.SetRunningTotal("green", 4)

	drifts, err := svc.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Drift{
		{TeamID: "green", Running: 4, Recomputed: 0},
		{TeamID: "red", Running: 999, Recomputed: 15},
	}, drifts)

	tallies, err := svc.Recompute(ctx)
	require.NoError(t, err)
	require.Len(t, tallies, 3)

	for _, team := range []string{"red", "green", "blue"} {
		running, err := svc.TeamTotal(ctx, team)
		require.NoError(t, err)
		for _, tally := range tallies {
			if tally.TeamID == team {
				assert.Equal(t, tally.TotalPoints, running, team)
			}
		}
	}

	drifts, err = svc.Verify(ctx)
	require.NoError(t, err)
	assert.Empty(t, drifts)

	require.Len(t, pub.events, 1)
	payload, err := event.DecodePayload[event.LeaderboardRecomputedPayloadV1](pub.events[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, 2, payload.DriftedTeams)
	assert.Equal(t, int64(15), payload.TotalPoints)
}

// approvingStore credits a fresh approval whenever running totals are listed, so any
// totals read outside the recompute lock are already stale when the tally runs
type approvingStore struct {
	*memstore.Store
	t *testing.T
}

func (s *approvingStore) ListTeamTotals(ctx context.Context) ([]domain.TeamTotal, error) {
	totals, err := s.Store.ListTeamTotals(ctx)
	approve(s.t, s.Store, "bob", "blue", domain.KindPhoto, 5)
	return totals, err
}

func TestRecompute_ConcurrentApprovalIsNotDrift(t *testing.T) {
	store := &approvingStore{Store: setupStore(t), t: t}
	pub := &recordingPublisher{}
	svc := NewService(store, pub)
	ctx := context.Background()

	approve(t, store.Store, "alice", "red", domain.KindArticle, 10)

	driftBefore := testutil.ToFloat64(metrics.LeaderboardDrift)
	tallies, err := svc.Recompute(ctx)
	require.NoError(t, err)
	require.Len(t, tallies, 3)

	assert.Equal(t, driftBefore, testutil.ToFloat64(metrics.LeaderboardDrift))
	require.Len(t, pub.events, 1)
	payload, err := event.DecodePayload[event.LeaderboardRecomputedPayloadV1](pub.events[0].Payload)
	require.NoError(t, err)
	assert.Zero(t, payload.DriftedTeams)
}

func TestBreakdown(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store, nil)
	ctx := context.Background()

	approve(t, store, "alice", "red", domain.KindArticle, 10)
	approve(t, store, "alice", "red", domain.KindPhoto, 5)
	approve(t, store, "bob", "blue", domain.KindPhoto, 5)

	breakdown, err := svc.Breakdown(ctx)
	require.NoError(t, err)
	require.Len(t, breakdown, 3)

	red := breakdown[0]
	assert.Equal(t, "red", red.TeamID)
	assert.Equal(t, int64(15), red.TotalPoints)
	assert.Equal(t, int64(10), red.ArticlePoints)
	assert.Equal(t, int64(5), red.PhotoPoints)
	assert.Equal(t, int64(2), red.ApprovedCount)
	assert.Equal(t, "blue", breakdown[1].TeamID)
	assert.Equal(t, "green", breakdown[2].TeamID)
}

func TestReconcileJob(t *testing.T) {
	store := setupStore(t)
	pub := &recordingPublisher{}
	job := NewReconcileJob(NewService(store, pub))
	ctx := context.Background()

	approve(t, store, "bob", "blue", domain.KindPhoto, 5)

	require.NoError(t, job.Process(ctx))
	assert.Empty(t, pub.events, "clean totals are left alone")

	store.SetRunningTotal("blue", 0)
	require.NoError(t, job.Process(ctx))
	assert.Len(t, pub.events, 1)

	total, err := store.GetTeamTotal(ctx, "blue")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestReconcileJob_StorageUnavailable(t *testing.T) {
	store := setupStore(t)
	store.SetUnavailable(true)
	err := NewReconcileJob(NewService(store, nil)).Process(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
