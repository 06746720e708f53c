package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string                 `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Contest event types
const (
	ContributionSubmitted Type = domain.EventTypeContributionSubmitted
	ContributionDecided   Type = domain.EventTypeContributionDecided
	TeamAssigned          Type = domain.EventTypeTeamAssigned
	LeaderboardRecomputed Type = domain.EventTypeLeaderboardRecomputed
)

// AllTypes lists every event type the contest engine publishes
var AllTypes = []Type{
	ContributionSubmitted,
	ContributionDecided,
	TeamAssigned,
	LeaderboardRecomputed,
}

// ContributionSubmittedPayloadV1 announces a new pending contribution
type ContributionSubmittedPayloadV1 struct {
	ContributionID int64  `json:"contribution_id"`
	ParticipantID  string `json:"participant_id"`
	TeamID         string `json:"team_id"`
	Kind           string `json:"kind"`
	Payload        string `json:"payload"`
	Caption        string `json:"caption,omitempty"`
	SubmittedAt    int64  `json:"submitted_at"`
}

// ContributionDecidedPayloadV1 is the outbound decision event.
// PointsDelta is zero for rejections.
type ContributionDecidedPayloadV1 struct {
	ContributionID int64  `json:"contribution_id"`
	ParticipantID  string `json:"participant_id"`
	TeamID         string `json:"team_id"`
	Kind           string `json:"kind"`
	Outcome        string `json:"outcome"`
	PointsDelta    int64  `json:"points_delta"`
	ModeratorID    string `json:"moderator_id"`
	Reason         string `json:"reason,omitempty"`
	DecidedAt      int64  `json:"decided_at"`
}

// DedupeKey identifies a decision for at-least-once consumers
func (p ContributionDecidedPayloadV1) DedupeKey() string {
	return fmt.Sprintf("%d:%s", p.ContributionID, p.Outcome)
}

// TeamAssignedPayloadV1 records a team assignment or privileged override
type TeamAssignedPayloadV1 struct {
	ParticipantID string `json:"participant_id"`
	TeamID        string `json:"team_id"`
	PreviousTeam  string `json:"previous_team,omitempty"`
	Override      bool   `json:"override"`
	Timestamp     int64  `json:"timestamp"`
}

// LeaderboardRecomputedPayloadV1 summarizes a recomputation
type LeaderboardRecomputedPayloadV1 struct {
	Teams        int   `json:"teams"`
	DriftedTeams int   `json:"drifted_teams"`
	TotalPoints  int64 `json:"total_points"`
	RecomputedAt int64 `json:"recomputed_at"`
}

// NewContributionSubmittedEvent builds a submission event from a stored contribution
func NewContributionSubmittedEvent(c *domain.Contribution) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ContributionSubmitted,
		Payload: ContributionSubmittedPayloadV1{
			ContributionID: c.ID,
			ParticipantID:  c.ParticipantID,
			TeamID:         c.TeamID,
			Kind:           string(c.Kind),
			Payload:        c.Payload,
			Caption:        c.Caption,
			SubmittedAt:    c.SubmittedAt.Unix(),
		},
	}
}

// NewContributionDecidedEvent builds a decision event from a decided contribution
func NewContributionDecidedEvent(c *domain.Contribution, outcome domain.DecisionOutcome) Event {
	decidedAt := time.Now()
	if c.DecidedAt != nil {
		decidedAt = *c.DecidedAt
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    ContributionDecided,
		Payload: ContributionDecidedPayloadV1{
			ContributionID: c.ID,
			ParticipantID:  c.ParticipantID,
			TeamID:         c.TeamID,
			Kind:           string(c.Kind),
			Outcome:        string(outcome),
			PointsDelta:    c.AwardedPoints,
			ModeratorID:    c.ModeratorID,
			Reason:         c.RejectReason,
			DecidedAt:      decidedAt.Unix(),
		},
		Metadata: map[string]interface{}{
			"moderator_id": c.ModeratorID,
		},
	}
}

// NewTeamAssignedEvent builds a team assignment event
func NewTeamAssignedEvent(participantID, teamID, previousTeam string, override bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TeamAssigned,
		Payload: TeamAssignedPayloadV1{
			ParticipantID: participantID,
			TeamID:        teamID,
			PreviousTeam:  previousTeam,
			Override:      override,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// NewLeaderboardRecomputedEvent builds a recompute summary event
func NewLeaderboardRecomputedEvent(tallies []domain.TeamTally, drifted int) Event {
	var total int64
	for _, t := range tallies {
		total += t.TotalPoints
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    LeaderboardRecomputed,
		Payload: LeaderboardRecomputedPayloadV1{
			Teams:        len(tallies),
			DriftedTeams: drifted,
			TotalPoints:  total,
			RecomputedAt: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher accepts events for best-effort delivery. It never reports failure to the caller.
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and aggregates their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
