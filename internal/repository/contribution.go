package repository

import (
	"context"
	"time"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

// Contributions defines data access for the contribution store
type Contributions interface {
	// CreateContribution inserts a pending contribution and assigns c.ID.
	// It fails with domain.ErrDuplicatePayload when the same participant has a pending or
	// approved contribution with the same PayloadKey submitted within window of c.SubmittedAt
	// (window 0 means the whole contest). Check and insert are atomic per participant.
	CreateContribution(ctx context.Context, c *domain.Contribution, window time.Duration) error
	GetContribution(ctx context.Context, id int64) (*domain.Contribution, error)
	// ListPendingPage returns up to limit pending contributions ordered by (SubmittedAt, ID)
	// strictly after the cursor (nil = from the start).
	ListPendingPage(ctx context.Context, filter domain.PendingFilter, after *domain.PendingCursor, limit int) ([]domain.Contribution, error)

	BeginModerationTx(ctx context.Context) (ModerationTx, error)
}

// ModerationTx groups a state transition with its team total update
type ModerationTx interface {
	Tx

	// TransitionIfPending moves a pending contribution to t.To and returns the updated row.
	// Returns domain.ErrAlreadyDecided if it is no longer pending, domain.ErrContributionNotFound if absent.
	TransitionIfPending(ctx context.Context, id int64, t domain.Transition) (*domain.Contribution, error)
	// IncrementTeamTotal adds delta to the team's running total and returns the new total
	IncrementTeamTotal(ctx context.Context, teamID string, delta int64) (int64, error)
}
