package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		assert.Equal(t, eventType, event.Type)
		assert.Equal(t, "payload", event.Payload)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType, Payload: "payload"})
	require.NoError(t, err)
	assert.True(t, handled, "handler was not called")
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}
	bus.Subscribe(eventType, handler)
	bus.Subscribe(eventType, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	called := 0

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		called++
		return errors.New("handler error")
	})
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		called++
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	assert.Error(t, err)
	assert.Equal(t, 2, called, "a failing handler must not stop later handlers")
}

func TestNewContributionDecidedEvent(t *testing.T) {
	decided := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &domain.Contribution{
		ID:            42,
		ParticipantID: "u1",
		TeamID:        "red",
		Kind:          domain.KindArticle,
		State:         domain.StateApproved,
		ModeratorID:   "mod",
		DecidedAt:     &decided,
		AwardedPoints: 10,
	}

	evt := NewContributionDecidedEvent(c, domain.OutcomeApprove)
	assert.Equal(t, ContributionDecided, evt.Type)
	assert.Equal(t, EventSchemaVersion, evt.Version)

	payload, err := DecodePayload[ContributionDecidedPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, int64(42), payload.ContributionID)
	assert.Equal(t, "approve", payload.Outcome)
	assert.Equal(t, int64(10), payload.PointsDelta)
	assert.Equal(t, decided.Unix(), payload.DecidedAt)
	assert.Equal(t, "42:approve", payload.DedupeKey())
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{
		"participant_id": "u1",
		"team_id":        "blue",
		"override":       true,
	}

	payload, err := DecodePayload[TeamAssignedPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", payload.ParticipantID)
	assert.Equal(t, "blue", payload.TeamID)
	assert.True(t, payload.Override)
}

func TestNewLeaderboardRecomputedEvent(t *testing.T) {
	evt := NewLeaderboardRecomputedEvent([]domain.TeamTally{
		{TeamID: "a", TotalPoints: 15},
		{TeamID: "b", TotalPoints: 5},
	}, 1)

	payload, ok := evt.Payload.(LeaderboardRecomputedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, 2, payload.Teams)
	assert.Equal(t, 1, payload.DriftedTeams)
	assert.Equal(t, int64(20), payload.TotalPoints)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 100 * time.Millisecond
	assert.Equal(t, base, CalculateRetryDelay(base, 0))
	assert.Equal(t, base, CalculateRetryDelay(base, 1))
	assert.Equal(t, 2*base, CalculateRetryDelay(base, 2))
	assert.Equal(t, 4*base, CalculateRetryDelay(base, 3))
}

func TestDecodePayload_RawAndEmpty(t *testing.T) {
	raw := json.RawMessage(`{"contribution_id": 9, "outcome": "reject"}`)
	payload, err := DecodePayload[ContributionDecidedPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, "9:reject", payload.DedupeKey())

	fromBytes, err := DecodePayload[TeamAssignedPayloadV1]([]byte(`{"team_id": "red"}`))
	require.NoError(t, err)
	assert.Equal(t, "red", fromBytes.TeamID)

	_, err = DecodePayload[TeamAssignedPayloadV1](nil)
	assert.Error(t, err)
}
