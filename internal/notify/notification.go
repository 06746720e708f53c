package notify

import (
	"fmt"

	"github.com/osse101/ContestBot_Go/internal/event"
)

// Kind distinguishes queue alerts from decision notices
type Kind string

const (
	KindSubmitted Kind = "submitted"
	KindDecided   Kind = "decided"
)

// Notification is what a Sink delivers. Fields not relevant to Kind are empty.
type Notification struct {
	Kind             Kind
	ContributionID   int64
	ParticipantID    string
	TeamID           string
	ContributionKind string
	Payload          string
	Caption          string
	Outcome          string
	PointsDelta      int64
	ModeratorID      string
	Reason           string
}

// DedupeKey identifies a notification across redeliveries of the same event
func (n Notification) DedupeKey() string {
	if n.Kind == KindDecided {
		return fmt.Sprintf("%d:%s", n.ContributionID, n.Outcome)
	}
	return fmt.Sprintf("%d:%s", n.ContributionID, KindSubmitted)
}

func fromSubmitted(p event.ContributionSubmittedPayloadV1) Notification {
	return Notification{
		Kind:             KindSubmitted,
		ContributionID:   p.ContributionID,
		ParticipantID:    p.ParticipantID,
		TeamID:           p.TeamID,
		ContributionKind: p.Kind,
		Payload:          p.Payload,
		Caption:          p.Caption,
	}
}

func fromDecided(p event.ContributionDecidedPayloadV1) Notification {
	return Notification{
		Kind:             KindDecided,
		ContributionID:   p.ContributionID,
		ParticipantID:    p.ParticipantID,
		TeamID:           p.TeamID,
		ContributionKind: p.Kind,
		Outcome:          p.Outcome,
		PointsDelta:      p.PointsDelta,
		ModeratorID:      p.ModeratorID,
		Reason:           p.Reason,
	}
}
