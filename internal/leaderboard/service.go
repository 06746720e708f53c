package leaderboard

import (
	"context"
	"sort"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/metrics"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

// Service answers standings and repairs running totals
type Service interface {
	// CurrentStanding ranks every team, including teams with no points
	CurrentStanding(ctx context.Context) ([]domain.LeaderboardEntry, error)
	TeamTotal(ctx context.Context, teamID string) (int64, error)
	// Recompute rebuilds running totals from approved contributions; the tally is authoritative
	Recompute(ctx context.Context) ([]domain.TeamTally, error)
	// Verify reports teams whose running total disagrees with a fresh tally, without writing.
	// Approvals committing between the two reads can show up as transient drift.
	Verify(ctx context.Context) ([]domain.Drift, error)
	// Breakdown returns per-kind points and approval counts in standing order
	Breakdown(ctx context.Context) ([]domain.TeamTally, error)
}

type service struct {
	repo      repository.Scores
	publisher event.Publisher
}

// NewService creates a leaderboard service. publisher may be nil.
func NewService(repo repository.Scores, publisher event.Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

func (s *service) CurrentStanding(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	totals, err := s.repo.ListTeamTotals(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(totals), nil
}

func (s *service) TeamTotal(ctx context.Context, teamID string) (int64, error) {
	if teamID == "" {
		return 0, domain.ErrTeamNotFound
	}
	return s.repo.GetTeamTotal(ctx, teamID)
}

func (s *service) Recompute(ctx context.Context) ([]domain.TeamTally, error) {
	log := logger.FromContext(ctx)

	before, tallies, err := s.repo.RecomputeTotals(ctx)
	if err != nil {
		log.Error(LogErrFailedToRecompute, "error", err)
		return nil, err
	}

	drifts := Diff(before, tallies)
	s.reportDrift(ctx, drifts)
	log.Info(LogMsgRecomputed, "teams", len(tallies), "drifted", len(drifts))

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewLeaderboardRecomputedEvent(tallies, len(drifts)))
	}
	return tallies, nil
}

func (s *service) Verify(ctx context.Context) ([]domain.Drift, error) {
	totals, err := s.repo.ListTeamTotals(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogErrFailedToVerify, "error", err)
		return nil, err
	}
	tallies, err := s.repo.TallyApproved(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogErrFailedToVerify, "error", err)
		return nil, err
	}
	return Diff(totals, tallies), nil
}

func (s *service) Breakdown(ctx context.Context) ([]domain.TeamTally, error) {
	tallies, err := s.repo.TallyApproved(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].TotalPoints != tallies[j].TotalPoints {
			return tallies[i].TotalPoints > tallies[j].TotalPoints
		}
		return tallies[i].TeamID < tallies[j].TeamID
	})
	return tallies, nil
}

func (s *service) reportDrift(ctx context.Context, drifts []domain.Drift) {
	log := logger.FromContext(ctx)
	for _, d := range drifts {
		metrics.LeaderboardDrift.Inc()
		log.Warn(LogMsgDriftDetected, "team_id", d.TeamID, "running", d.Running, "recomputed", d.Recomputed)
	}
}
