package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/ContestBot_Go/internal/config"
	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/eventlog"
	"github.com/osse101/ContestBot_Go/internal/handler"
	"github.com/osse101/ContestBot_Go/internal/leaderboard"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/metrics"
	"github.com/osse101/ContestBot_Go/internal/notify"
	"github.com/osse101/ContestBot_Go/internal/sse"
	"github.com/osse101/ContestBot_Go/internal/streamerbot"
	"github.com/osse101/ContestBot_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus           event.Bus
	EventLogService    eventlog.Service
	LeaderboardService leaderboard.Service
	SSEHub             *sse.Hub
	NotifyPool         *worker.Pool
	Config             *config.Config
}

// EventHandlers holds subscribers that own resources needing shutdown
type EventHandlers struct {
	DiscordSink *notify.DiscordSink
	Streamerbot *streamerbot.Client
}

// RegisterEventHandlers sets up every bus subscriber:
// - metrics collector (event counters)
// - event logger (persists events for the admin console)
// - notification dispatcher (log sink, plus Discord and Streamer.bot when configured)
// - SSE subscriber (live events and standings)
//
// ctx bounds the lifetime of the Streamer.bot connection loop.
func RegisterEventHandlers(ctx context.Context, deps EventHandlerDependencies) (*EventHandlers, error) {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	logger.Info(LogMsgMetricsCollectorRegistered)

	if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	logger.Info(LogMsgEventLoggerInitialized)

	handlers := &EventHandlers{}
	sinks := []notify.Sink{notify.NewLogSink()}
	if deps.Config.DiscordEnabled() {
		discordSink, err := notify.NewDiscordSink(deps.Config.DiscordToken, deps.Config.DiscordModeratorChannelID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscordSink, err)
		}
		handlers.DiscordSink = discordSink
		sinks = append(sinks, discordSink)
	} else {
		logger.Info(LogMsgDiscordSinkDisabled)
	}

	if deps.Config.StreamerbotEnabled() {
		client := streamerbot.NewClient(deps.Config.StreamerbotURL, deps.Config.StreamerbotPassword)
		client.Start(ctx)
		handlers.Streamerbot = client
		sinks = append(sinks, streamerbot.NewSink(client))
		logger.Info(LogMsgStreamerbotSinkEnabled, "url", deps.Config.StreamerbotURL)
	}

	dispatcher, err := notify.NewDispatcher(deps.NotifyPool, sinks, notify.DispatcherConfig{})
	if err != nil {
		handlers.close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDispatcher, err)
	}
	dispatcher.Subscribe(deps.EventBus)
	logger.Info(LogMsgNotifyDispatcherRegistered, "sinks", len(sinks))

	if deps.SSEHub != nil {
		sse.NewSubscriber(deps.SSEHub, deps.EventBus, deps.LeaderboardService).Subscribe()
		logger.Info(LogMsgSSESubscriberRegistered)
	}

	return handlers, nil
}

// Probes reports the optional notification transports on /readyz
func (h *EventHandlers) Probes() []handler.Probe {
	if h == nil || h.Streamerbot == nil {
		return nil
	}
	client := h.Streamerbot
	return []handler.Probe{{
		Name: ProbeStreamerbot,
		Check: func(context.Context) error {
			if !client.IsConnected() {
				return streamerbot.ErrNotConnected
			}
			return nil
		},
	}}
}

func (h *EventHandlers) close() {
	if h == nil {
		return
	}
	if h.Streamerbot != nil {
		h.Streamerbot.Stop()
	}
	if h.DiscordSink != nil {
		if err := h.DiscordSink.Close(); err != nil {
			logger.Error(LogMsgDiscordSinkCloseFailed, "error", err)
		}
	}
}
