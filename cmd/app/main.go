package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/ContestBot_Go/internal/bootstrap"
	"github.com/osse101/ContestBot_Go/internal/config"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/server"
	"github.com/osse101/ContestBot_Go/internal/sse"
	"github.com/osse101/ContestBot_Go/internal/worker"
)

const shutdownTimeout = 15 * time.Second

// @title ContestBot API
// @version 1.0
// @description Team contest engine: submissions, moderation, leaderboard.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "contestbot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer closeQuietly(logFile)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		repos.Close()
		return err
	}

	svcs := bootstrap.InitializeServices(cfg, repos, publisher)

	hub := sse.NewHub()
	hub.Start()

	notifyPool := worker.NewPool(cfg.NotifyWorkers, cfg.NotifyQueueSize)
	notifyPool.Start()

	handlers, err := bootstrap.RegisterEventHandlers(ctx, bootstrap.EventHandlerDependencies{
		EventBus:           bus,
		EventLogService:    svcs.EventLog,
		LeaderboardService: svcs.Leaderboard,
		SSEHub:             hub,
		NotifyPool:         notifyPool,
		Config:             cfg,
	})
	if err != nil {
		shutdown(bootstrap.ShutdownComponents{
			SSEHub:             hub,
			NotifyPool:         notifyPool,
			ResilientPublisher: publisher,
			Repositories:       repos,
		})
		return err
	}

	if _, err := bootstrap.SyncContestConfig(ctx, cfg, svcs.Registry); err != nil {
		shutdown(bootstrap.ShutdownComponents{
			SSEHub:             hub,
			NotifyPool:         notifyPool,
			EventHandlers:      handlers,
			ResilientPublisher: publisher,
			Repositories:       repos,
		})
		return err
	}

	jobs := bootstrap.StartBackgroundJobs(cfg, svcs)

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
	}, server.Services{
		Registry:    svcs.Registry,
		Submission:  svcs.Submission,
		Moderation:  svcs.Moderation,
		Leaderboard: svcs.Leaderboard,
		EventLog:    svcs.EventLog,
		Hub:         hub,
		Storage:     repos.Store,
		Probes:      handlers.Probes(),
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		err = nil
	case err = <-serveErr:
	}

	shutdown(bootstrap.ShutdownComponents{
		Server:             srv,
		Jobs:               jobs,
		SSEHub:             hub,
		NotifyPool:         notifyPool,
		EventHandlers:      handlers,
		ResilientPublisher: publisher,
		Repositories:       repos,
	})
	return err
}

func shutdown(components bootstrap.ShutdownComponents) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(ctx, components)
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
