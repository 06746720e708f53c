package sse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/event"
)

type fakeStandings struct {
	entries []domain.LeaderboardEntry
	err     error
	calls   int
}

func (f *fakeStandings) CurrentStanding(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	f.calls++
	return f.entries, f.err
}

func decidedEvent(outcome domain.DecisionOutcome, points int64) event.Event {
	return event.NewContributionDecidedEvent(&domain.Contribution{
		ID:            7,
		ParticipantID: "u1",
		TeamID:        "red",
		Kind:          domain.KindArticle,
		ModeratorID:   "mod",
		AwardedPoints: points,
	}, outcome)
}

func TestSubscriber_ApprovalPushesStandings(t *testing.T) {
	hub := startHub(t)
	client := hub.Register(Filter{})

	standings := &fakeStandings{entries: []domain.LeaderboardEntry{{Rank: 1, TeamID: "red", TotalPoints: 10}}}
	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus, standings).Subscribe()

	require.NoError(t, bus.Publish(context.Background(), decidedEvent(domain.OutcomeApprove, 10)))

	assert.Equal(t, string(event.ContributionDecided), receive(t, client).Type)
	pushed := receive(t, client)
	assert.Equal(t, EventTypeLeaderboardUpdated, pushed.Type)

	payload, ok := pushed.Payload.(LeaderboardUpdatedPayload)
	require.True(t, ok)
	assert.Equal(t, string(event.ContributionDecided), payload.Reason)
	assert.Equal(t, standings.entries, payload.Standings)
}

func TestSubscriber_RejectionDoesNotPushStandings(t *testing.T) {
	hub := startHub(t)
	client := hub.Register(Filter{})

	standings := &fakeStandings{}
	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus, standings).Subscribe()

	require.NoError(t, bus.Publish(context.Background(), decidedEvent(domain.OutcomeReject, 0)))
	require.NoError(t, bus.Publish(context.Background(), event.NewTeamAssignedEvent("u1", "red", "", false)))

	assert.Equal(t, string(event.ContributionDecided), receive(t, client).Type)
	assert.Equal(t, string(event.TeamAssigned), receive(t, client).Type)
	assert.Zero(t, standings.calls)
}

func TestSubscriber_StandingErrorIsSwallowed(t *testing.T) {
	hub := startHub(t)
	bus := event.NewMemoryBus()
	standings := &fakeStandings{err: errors.New("db down")}
	NewSubscriber(hub, bus, standings).Subscribe()

	err := bus.Publish(context.Background(), event.NewLeaderboardRecomputedEvent(nil, 0))
	assert.NoError(t, err)
	assert.Equal(t, 1, standings.calls)
}
