package submission

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/metrics"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

// Service registers contributions and lists the moderation queue
type Service interface {
	// Submit stores a new pending contribution under the participant's current team
	Submit(ctx context.Context, participantID string, kind domain.ContributionKind, payload, caption string) (*domain.Contribution, error)
	Get(ctx context.Context, id int64) (*domain.Contribution, error)
	// ListPending yields pending contributions oldest first. Pages are fetched lazily and
	// every iteration re-reads current state, so ranging again restarts from the oldest.
	ListPending(ctx context.Context, filter domain.PendingFilter) iter.Seq2[domain.Contribution, error]
}

// Config holds the submission rules that come from configuration
type Config struct {
	DuplicateWindow time.Duration // 0 means the whole contest
	PageSize        int
}

// Repository is the storage the submission service needs
type Repository interface {
	GetParticipant(ctx context.Context, participantID string) (*domain.Participant, error)
	repository.Contributions
}

type service struct {
	repo      Repository
	publisher event.Publisher
	cfg       Config
	now       func() time.Time
}

// Option configures the service
type Option func(*service)

// WithClock overrides the submission timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates a submission service. publisher may be nil.
func NewService(repo Repository, publisher event.Publisher, cfg Config, opts ...Option) Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = domain.DefaultPendingPageSize
	}
	s := &service{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Submit(ctx context.Context, participantID string, kind domain.ContributionKind, payload, caption string) (*domain.Contribution, error) {
	log := logger.FromContext(ctx)

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return nil, s.refuse(ctx, metrics.ReasonInvalid, fmt.Errorf("%w: participant_id is required", domain.ErrInvalidInput))
	}
	if _, err := domain.ParseKind(string(kind)); err != nil {
		return nil, s.refuse(ctx, metrics.ReasonInvalid, err)
	}
	validated, err := validatePayload(kind, payload)
	if err != nil {
		return nil, s.refuse(ctx, metrics.ReasonInvalid, err)
	}
	caption, err = normalizeCaption(caption)
	if err != nil {
		return nil, s.refuse(ctx, metrics.ReasonInvalid, err)
	}

	participant, err := s.repo.GetParticipant(ctx, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.refuse(ctx, metrics.ReasonNotFound, err)
		}
		log.Error(LogErrFailedToLookup, "participant_id", participantID, "error", err)
		return nil, err
	}
	if !participant.HasTeam() {
		return nil, s.refuse(ctx, metrics.ReasonUnregistered, fmt.Errorf("%w: %s", domain.ErrUnregistered, participantID))
	}

	c := &domain.Contribution{
		ParticipantID: participant.ID,
		TeamID:        participant.TeamID,
		Kind:          kind,
		Payload:       validated.Payload,
		PayloadKey:    validated.Key,
		Caption:       caption,
		SubmittedAt:   s.now().UTC(),
		State:         domain.StatePending,
	}
	if err := s.repo.CreateContribution(ctx, c, s.cfg.DuplicateWindow); err != nil {
		if errors.Is(err, domain.ErrDuplicatePayload) {
			return nil, s.refuse(ctx, metrics.ReasonDuplicate, err)
		}
		log.Error(LogErrFailedToStore, "participant_id", participantID, "kind", kind, "error", err)
		return nil, err
	}

	log.Info(LogMsgContributionSubmitted,
		"contribution_id", c.ID,
		"participant_id", c.ParticipantID,
		"team_id", c.TeamID,
		"kind", c.Kind)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewContributionSubmittedEvent(c))
	}
	return c, nil
}

func (s *service) refuse(ctx context.Context, reason string, err error) error {
	metrics.SubmissionsRejected.WithLabelValues(reason).Inc()
	logger.FromContext(ctx).Info(LogMsgSubmissionRefused, "reason", reason, "error", err)
	return err
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Contribution, error) {
	if id <= 0 {
		return nil, domain.ErrContributionNotFound
	}
	return s.repo.GetContribution(ctx, id)
}

func (s *service) ListPending(ctx context.Context, filter domain.PendingFilter) iter.Seq2[domain.Contribution, error] {
	return func(yield func(domain.Contribution, error) bool) {
		var cursor *domain.PendingCursor
		for {
			if err := ctx.Err(); err != nil {
				yield(domain.Contribution{}, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err))
				return
			}
			page, err := s.repo.ListPendingPage(ctx, filter, cursor, s.cfg.PageSize)
			if err != nil {
				yield(domain.Contribution{}, err)
				return
			}
			for _, c := range page {
				if !yield(c, nil) {
					return
				}
			}
			if len(page) < s.cfg.PageSize {
				return
			}
			last := page[len(page)-1]
			cursor = &domain.PendingCursor{SubmittedAt: last.SubmittedAt, ID: last.ID}
		}
	}
}
