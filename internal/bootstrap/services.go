package bootstrap

import (
	"github.com/osse101/ContestBot_Go/internal/config"
	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/eventlog"
	"github.com/osse101/ContestBot_Go/internal/leaderboard"
	"github.com/osse101/ContestBot_Go/internal/moderation"
	"github.com/osse101/ContestBot_Go/internal/registry"
	"github.com/osse101/ContestBot_Go/internal/submission"
)

// Services holds the contest services built over one store
type Services struct {
	Registry    registry.Service
	Submission  submission.Service
	Moderation  moderation.Service
	Leaderboard leaderboard.Service
	EventLog    eventlog.Service
}

// InitializeServices builds every service. All of them publish through the same
// resilient publisher, so a failed downstream handler never fails a domain write.
func InitializeServices(cfg *config.Config, repos *Repositories, publisher event.Publisher) *Services {
	return &Services{
		Registry: registry.NewService(repos.Store, publisher, registry.CacheConfig{
			Size: cfg.ParticipantCacheSize,
			TTL:  cfg.ParticipantCacheTTL,
		}),
		Submission: submission.NewService(repos.Store, publisher, submission.Config{
			DuplicateWindow: cfg.DuplicateWindow,
			PageSize:        cfg.PendingPageSize,
		}),
		Moderation:  moderation.NewService(repos.Store, cfg.PointsTable(), publisher),
		Leaderboard: leaderboard.NewService(repos.Store, publisher),
		EventLog:    eventlog.NewService(repos.EventLog),
	}
}
