package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/ContestBot_Go/internal/config"
	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/registry"
	"github.com/osse101/ContestBot_Go/internal/validation"
)

// ContestSyncResult summarizes what a contest config sync changed
type ContestSyncResult struct {
	TeamsCreated int
	TeamsExisted int
	Assigned     int
	Unchanged    int
	Failed       int
}

// SyncContestConfig applies the contest file named by CONTEST_CONFIG_PATH.
// Existing teams are left alone and roster rows go through the regular import path,
// so running it on every start is safe. A missing path disables the sync.
func SyncContestConfig(ctx context.Context, cfg *config.Config, reg registry.Service) (*ContestSyncResult, error) {
	if cfg.ContestConfigPath == "" {
		logger.Info(LogMsgContestSyncSkipped)
		return &ContestSyncResult{}, nil
	}

	file, err := config.LoadContestFile(cfg.ContestConfigPath, validation.NewSchemaValidator())
	if err != nil {
		return nil, err
	}

	result := &ContestSyncResult{}
	for _, t := range file.Teams {
		_, err := reg.CreateTeam(ctx, t.ID, t.Name)
		switch {
		case err == nil:
			result.TeamsCreated++
		case errors.Is(err, domain.ErrTeamExists):
			result.TeamsExisted++
		default:
			return nil, fmt.Errorf("%s %q: %w", ErrMsgContestSyncTeam, t.ID, err)
		}
	}

	for _, r := range reg.ImportParticipants(ctx, file.Roster) {
		switch r.Status {
		case domain.ImportStatusAssigned:
			result.Assigned++
		case domain.ImportStatusUnchanged:
			result.Unchanged++
		default:
			result.Failed++
		}
	}

	logger.Info(LogMsgContestSynced,
		"path", cfg.ContestConfigPath,
		"teams_created", result.TeamsCreated,
		"teams_existing", result.TeamsExisted,
		"assigned", result.Assigned,
		"unchanged", result.Unchanged,
		"failed", result.Failed)
	return result, nil
}
