package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ContestBot_Go/internal/config"
	"github.com/osse101/ContestBot_Go/internal/database"
	"github.com/osse101/ContestBot_Go/internal/database/postgres"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/memstore"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

// Repositories holds the storage implementations selected by STORAGE_DRIVER
type Repositories struct {
	Store    repository.Store
	EventLog repository.EventLog

	pool *pgxpool.Pool
}

// Close releases the database pool, if any
func (r *Repositories) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// InitializeRepositories opens storage for the configured driver. The postgres
// driver connects, optionally applies embedded migrations, and shares one pool
// between the contest store and the event log.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	logger.Info(LogMsgStorageSelected, "driver", cfg.StorageDriver)

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		return &Repositories{
			Store:    memstore.New(),
			EventLog: memstore.NewEventLog(),
		}, nil

	case config.StorageDriverPostgres:
		pool, err := database.NewPool(ctx, database.PoolConfig{
			ConnString:       cfg.GetDBConnString(),
			MaxConns:         cfg.DBMaxConns,
			MaxConnIdleTime:  cfg.DBMaxConnIdleTime,
			MaxConnLifetime:  cfg.DBMaxConnLifetime,
			StatementTimeout: cfg.DBStatementTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}

		if cfg.MigrateOnStart {
			migrateCtx, cancel := context.WithTimeout(ctx, MigrationTimeout)
			err := database.Migrate(migrateCtx, pool)
			cancel()
			if err != nil {
				pool.Close()
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
			}
		} else {
			logger.Info(LogMsgMigrationsSkipped)
		}

		return &Repositories{
			Store:    postgres.NewStore(pool),
			EventLog: postgres.NewEventLogRepository(pool),
			pool:     pool,
		}, nil

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageDriver, cfg.StorageDriver)
	}
}
