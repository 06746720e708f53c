package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/metrics"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

// Outcome is the committed result of a decision
type Outcome struct {
	Contribution *domain.Contribution  `json:"contribution"`
	Outcome      domain.DecisionOutcome `json:"outcome"`
	PointsDelta  int64                  `json:"points_delta"`
	// TeamTotal is the team's running total after an approval; zero for rejections
	TeamTotal int64 `json:"team_total,omitempty"`
}

// Service applies moderator decisions to pending contributions
type Service interface {
	// Decide approves or rejects a pending contribution. At most one decision ever takes
	// effect per contribution; later ones fail with domain.ErrAlreadyDecided and change nothing.
	Decide(ctx context.Context, decision domain.ModerationDecision) (*Outcome, error)
}

// Repository is the storage the moderation engine needs
type Repository interface {
	GetContribution(ctx context.Context, id int64) (*domain.Contribution, error)
	BeginModerationTx(ctx context.Context) (repository.ModerationTx, error)
}

type service struct {
	repo      Repository
	points    domain.PointsTable
	publisher event.Publisher
	now       func() time.Time
}

// Option configures the service
type Option func(*service)

// WithClock overrides the decision timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates a moderation engine. publisher may be nil.
func NewService(repo Repository, points domain.PointsTable, publisher event.Publisher, opts ...Option) Service {
	s := &service{
		repo:      repo,
		points:    points,
		publisher: publisher,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateDecision(d *domain.ModerationDecision) error {
	d.ModeratorID = strings.TrimSpace(d.ModeratorID)
	if d.ModeratorID == "" {
		return fmt.Errorf("%w: moderator_id is required", domain.ErrInvalidInput)
	}
	if _, err := domain.ParseOutcome(string(d.Outcome)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if d.ContributionID <= 0 {
		return domain.ErrContributionNotFound
	}
	d.Reason = strings.TrimSpace(d.Reason)
	if utf8.RuneCountInString(d.Reason) > domain.MaxRejectReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", domain.ErrInvalidInput, domain.MaxRejectReasonLength)
	}
	return nil
}

func (s *service) Decide(ctx context.Context, decision domain.ModerationDecision) (*Outcome, error) {
	log := logger.FromContext(ctx)

	if err := validateDecision(&decision); err != nil {
		return nil, err
	}

	current, err := s.repo.GetContribution(ctx, decision.ContributionID)
	if err != nil {
		return nil, err
	}
	if current.State.IsTerminal() {
		return nil, s.alreadyDecided(ctx, decision, current.State)
	}

	transition := domain.Transition{
		To:          decision.Outcome.TargetState(),
		ModeratorID: decision.ModeratorID,
		DecidedAt:   s.now().UTC(),
	}
	if decision.Outcome == domain.OutcomeApprove {
		transition.AwardedPoints, err = s.points.PointsFor(current.Kind)
		if err != nil {
			return nil, err
		}
	} else {
		transition.Reason = decision.Reason
	}

	tx, err := s.repo.BeginModerationTx(ctx)
	if err != nil {
		log.Error(LogErrFailedToBegin, "contribution_id", decision.ContributionID, "error", err)
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	updated, err := tx.TransitionIfPending(ctx, decision.ContributionID, transition)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyDecided) {
			return nil, s.alreadyDecided(ctx, decision, "")
		}
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error(LogErrFailedTransition, "contribution_id", decision.ContributionID, "error", err)
		}
		return nil, err
	}

	out := &Outcome{Contribution: updated, Outcome: decision.Outcome}
	if decision.Outcome == domain.OutcomeApprove {
		total, err := tx.IncrementTeamTotal(ctx, updated.TeamID, updated.AwardedPoints)
		if err != nil {
			log.Error(LogErrFailedIncrement, "contribution_id", updated.ID, "team_id", updated.TeamID, "error", err)
			return nil, err
		}
		out.PointsDelta = updated.AwardedPoints
		out.TeamTotal = total
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(LogErrFailedCommit, "contribution_id", updated.ID, "error", err)
		return nil, err
	}

	log.Info(LogMsgDecisionCommitted,
		"contribution_id", updated.ID,
		"outcome", decision.Outcome,
		"moderator_id", decision.ModeratorID,
		"team_id", updated.TeamID,
		"points", out.PointsDelta)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewContributionDecidedEvent(updated, decision.Outcome))
	}
	return out, nil
}

// alreadyDecided is the expected outcome of a lost race or a retried request, not a failure
func (s *service) alreadyDecided(ctx context.Context, d domain.ModerationDecision, state domain.ContributionState) error {
	metrics.ModerationConflicts.Inc()
	logger.FromContext(ctx).Info(LogMsgAlreadyDecided,
		"contribution_id", d.ContributionID,
		"moderator_id", d.ModeratorID,
		"attempted", d.Outcome,
		"state", state)
	return fmt.Errorf("%w: contribution %d", domain.ErrAlreadyDecided, d.ContributionID)
}
