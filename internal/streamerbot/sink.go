package streamerbot

import (
	"context"
	"strconv"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/notify"
)

// ActionTrigger is the part of Client the sink needs
type ActionTrigger interface {
	DoAction(ctx context.Context, actionName string, args map[string]string) error
}

// Sink forwards contest notifications to Streamer.bot actions, typically to drive
// stream overlays and chat announcements
type Sink struct {
	client ActionTrigger
}

// NewSink creates a Sink over a running client
func NewSink(client ActionTrigger) *Sink {
	return &Sink{client: client}
}

// Name implements notify.Sink
func (s *Sink) Name() string { return ChannelStreamerbot }

// Deliver implements notify.Sink
func (s *Sink) Deliver(ctx context.Context, n notify.Notification) error {
	return s.client.DoAction(ctx, actionFor(n), actionArgs(n))
}

func actionFor(n notify.Notification) string {
	if n.Kind == notify.KindSubmitted {
		return ActionContributionSubmitted
	}
	if n.Outcome == string(domain.OutcomeApprove) {
		return ActionContributionApproved
	}
	return ActionContributionRejected
}

func actionArgs(n notify.Notification) map[string]string {
	args := map[string]string{
		"contribution_id": strconv.FormatInt(n.ContributionID, 10),
		"participant_id":  n.ParticipantID,
		"team_id":         n.TeamID,
		"kind":            n.ContributionKind,
	}
	switch n.Kind {
	case notify.KindSubmitted:
		args["caption"] = n.Caption
	case notify.KindDecided:
		args["outcome"] = n.Outcome
		args["points"] = strconv.FormatInt(n.PointsDelta, 10)
		if n.Reason != "" {
			args["reason"] = n.Reason
		}
	}
	return args
}
