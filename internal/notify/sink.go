package notify

import (
	"context"

	"github.com/osse101/ContestBot_Go/internal/logger"
)

// Sink delivers notifications to one outbound channel
type Sink interface {
	Name() string
	Deliver(ctx context.Context, n Notification) error
}

// LogSink writes notifications to the structured log. Used when no chat transport is configured.
type LogSink struct{}

// NewLogSink creates a LogSink
func NewLogSink() *LogSink { return &LogSink{} }

// Name implements Sink
func (LogSink) Name() string { return ChannelLog }

// Deliver implements Sink
func (LogSink) Deliver(ctx context.Context, n Notification) error {
	logger.FromContext(ctx).Info(LogMsgNotificationSent,
		"channel", ChannelLog,
		"kind", n.Kind,
		"contribution_id", n.ContributionID,
		"participant_id", n.ParticipantID,
		"team_id", n.TeamID,
		"outcome", n.Outcome,
		"points_delta", n.PointsDelta)
	return nil
}
