package sse

import (
	"context"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/logger"
)

// StandingSource provides the standings pushed after totals change
type StandingSource interface {
	CurrentStanding(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub       *Hub
	bus       event.Bus
	standings StandingSource
}

// NewSubscriber creates a new SSE subscriber. standings may be nil, which disables leaderboard pushes.
func NewSubscriber(hub *Hub, bus event.Bus, standings StandingSource) *Subscriber {
	return &Subscriber{
		hub:       hub,
		bus:       bus,
		standings: standings,
	}
}

// Subscribe forwards every contest event type to the hub
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(event.AllTypes))
	for _, t := range event.AllTypes {
		s.bus.Subscribe(t, s.handle)
		types = append(types, string(t))
	}
	logger.Info(LogMsgSubscriberReady, "types", types)
}

func (s *Subscriber) handle(ctx context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), teamOf(evt), evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type)

	if s.changesTotals(evt) {
		s.pushStandings(ctx, string(evt.Type))
	}
	return nil
}

func (s *Subscriber) changesTotals(evt event.Event) bool {
	switch evt.Type {
	case event.LeaderboardRecomputed:
		return true
	case event.ContributionDecided:
		payload, err := event.DecodePayload[event.ContributionDecidedPayloadV1](evt.Payload)
		return err == nil && payload.PointsDelta > 0
	}
	return false
}

func (s *Subscriber) pushStandings(ctx context.Context, reason string) {
	if s.standings == nil {
		return
	}
	standings, err := s.standings.CurrentStanding(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgStandingFailed, "error", err)
		return
	}
	s.hub.Broadcast(EventTypeLeaderboardUpdated, "", LeaderboardUpdatedPayload{Reason: reason, Standings: standings})
}

// teamOf returns the team an event belongs to, or "" for contest-wide events
func teamOf(evt event.Event) string {
	switch evt.Type {
	case event.ContributionSubmitted:
		if p, err := event.DecodePayload[event.ContributionSubmittedPayloadV1](evt.Payload); err == nil {
			return p.TeamID
		}
	case event.ContributionDecided:
		if p, err := event.DecodePayload[event.ContributionDecidedPayloadV1](evt.Payload); err == nil {
			return p.TeamID
		}
	case event.TeamAssigned:
		if p, err := event.DecodePayload[event.TeamAssignedPayloadV1](evt.Payload); err == nil {
			return p.TeamID
		}
	}
	return ""
}
