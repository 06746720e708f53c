package repository

import (
	"context"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

// Scores defines data access for running team totals
type Scores interface {
	// ListTeamTotals returns every team's running total, including teams with zero
	ListTeamTotals(ctx context.Context) ([]domain.TeamTotal, error)
	GetTeamTotal(ctx context.Context, teamID string) (int64, error)
	// TallyApproved aggregates approved contributions without writing
	TallyApproved(ctx context.Context) ([]domain.TeamTally, error)
	// RecomputeTotals tallies approved contributions and replaces the running totals atomically.
	// It also returns the totals it replaced, read under the same lock as the tally.
	RecomputeTotals(ctx context.Context) (before []domain.TeamTotal, tallies []domain.TeamTally, err error)
}

// Store is the full contest storage surface a driver provides
type Store interface {
	Registry
	Contributions
	Scores
	Ping(ctx context.Context) error
}
