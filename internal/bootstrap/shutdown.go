package bootstrap

import (
	"context"

	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/server"
	"github.com/osse101/ContestBot_Go/internal/sse"
	"github.com/osse101/ContestBot_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Any field may be nil.
type ShutdownComponents struct {
	Server             *server.Server
	Jobs               *BackgroundJobs
	SSEHub             *sse.Hub
	NotifyPool         *worker.Pool
	EventHandlers      *EventHandlers
	ResilientPublisher *event.ResilientPublisher
	Repositories       *Repositories
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (no new requests, so no new events)
// 2. scheduled jobs and the SSE hub
// 3. resilient publisher (flushes retries into subscribers)
// 4. notification pool (drains queued deliveries), then the sinks
// 5. storage
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	c.Jobs.Stop()
	if c.SSEHub != nil {
		c.SSEHub.Stop()
	}

	if c.ResilientPublisher != nil {
		logger.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			logger.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.NotifyPool != nil {
		c.NotifyPool.Stop()
	}
	c.EventHandlers.close()

	if c.Repositories != nil {
		c.Repositories.Close()
	}

	logger.Info(LogMsgServerStopped)
}
