package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ContestBot_Go/internal/database"
	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

// CreateContribution runs the duplicate check and insert in one transaction holding a
// per-participant advisory lock, so two identical concurrent submissions cannot both pass.
func (s *Store) CreateContribution(ctx context.Context, c *domain.Contribution, window time.Duration) error {
	if c.SubmittedAt.IsZero() {
		c.SubmittedAt = time.Now()
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return wrapErr(ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, c.ParticipantID); err != nil {
		return wrapErr(ErrMsgFailedToLockParticipant, err)
	}

	var cutoff *time.Time
	if window > 0 {
		t := c.SubmittedAt.Add(-window)
		cutoff = &t
	}

	var dupID int64
	err = tx.QueryRow(ctx, `
		SELECT contribution_id FROM contributions
		WHERE participant_id = $1
		  AND payload_key = $2
		  AND state IN ('pending', 'approved')
		  AND ($3::timestamptz IS NULL OR submitted_at >= $3)
		LIMIT 1`,
		c.ParticipantID, c.PayloadKey, cutoff).Scan(&dupID)
	switch {
	case err == nil:
		return fmt.Errorf("%w: matches contribution %d", domain.ErrDuplicatePayload, dupID)
	case !errors.Is(err, pgx.ErrNoRows):
		return wrapErr(ErrMsgFailedToCheckDuplicate, err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO contributions (participant_id, team_id, kind, payload, payload_key, caption, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING contribution_id`,
		c.ParticipantID, c.TeamID, string(c.Kind), c.Payload, c.PayloadKey, c.Caption, c.SubmittedAt,
	).Scan(&c.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
		}
		return wrapErr(ErrMsgFailedToInsertContribution, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapErr(ErrMsgFailedToCommitTransaction, err)
	}

	c.State = domain.StatePending
	c.AwardedPoints = 0
	return nil
}

// GetContribution retrieves a contribution by ID
func (s *Store) GetContribution(ctx context.Context, id int64) (*domain.Contribution, error) {
	row := s.db.QueryRow(ctx, `SELECT `+contributionColumns+` FROM contributions WHERE contribution_id = $1`, id)
	c, err := scanContribution(row)
	if err != nil {
		return nil, notFoundOr(ErrMsgFailedToGetContribution, err, domain.ErrContributionNotFound)
	}
	return c, nil
}

// ListPendingPage returns the next keyset page ordered by (submitted_at, contribution_id)
func (s *Store) ListPendingPage(ctx context.Context, filter domain.PendingFilter, after *domain.PendingCursor, limit int) ([]domain.Contribution, error) {
	if limit <= 0 {
		limit = domain.DefaultPendingPageSize
	}

	var afterAt *time.Time
	var afterID int64
	if after != nil {
		afterAt = &after.SubmittedAt
		afterID = after.ID
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+contributionColumns+`
		FROM contributions
		WHERE state = 'pending'
		  AND ($1 = '' OR kind = $1)
		  AND ($2 = '' OR team_id = $2)
		  AND ($3::timestamptz IS NULL OR (submitted_at, contribution_id) > ($3, $4))
		ORDER BY submitted_at, contribution_id
		LIMIT $5`,
		string(filter.Kind), filter.TeamID, afterAt, afterID, limit)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToListPending, err)
	}

	page, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Contribution, error) {
		c, err := scanContribution(row)
		if err != nil {
			return domain.Contribution{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToListPending, err)
	}
	return page, nil
}

// BeginModerationTx starts a transaction for one moderation decision
func (s *Store) BeginModerationTx(ctx context.Context) (repository.ModerationTx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToBeginTransaction, err)
	}
	return &moderationTx{tx: tx}, nil
}

// moderationTx implements repository.ModerationTx
type moderationTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *moderationTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return wrapErr(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback rolls back the transaction
func (t *moderationTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// TransitionIfPending is a compare-and-swap on state. The row lock taken by the UPDATE is held
// until commit, so a concurrent decider blocks and then matches zero rows.
func (t *moderationTx) TransitionIfPending(ctx context.Context, id int64, tr domain.Transition) (*domain.Contribution, error) {
	row := t.tx.QueryRow(ctx, `
		UPDATE contributions
		SET state = $2, moderator_id = $3, decided_at = $4, reject_reason = $5, awarded_points = $6
		WHERE contribution_id = $1 AND state = 'pending'
		RETURNING `+contributionColumns,
		id, string(tr.To), nullIfEmpty(tr.ModeratorID), tr.DecidedAt, tr.Reason, tr.AwardedPoints)

	c, err := scanContribution(row)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, wrapErr(ErrMsgFailedToTransition, err)
	}

	// Zero rows: either missing or already decided
	var state string
	err = t.tx.QueryRow(ctx, `SELECT state FROM contributions WHERE contribution_id = $1`, id).Scan(&state)
	if err != nil {
		return nil, notFoundOr(ErrMsgFailedToTransition, err, domain.ErrContributionNotFound)
	}
	return nil, fmt.Errorf("%w: contribution %d is %s", domain.ErrAlreadyDecided, id, state)
}

// IncrementTeamTotal upserts the running total in the same transaction as the transition
func (t *moderationTx) IncrementTeamTotal(ctx context.Context, teamID string, delta int64) (int64, error) {
	var total int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO team_scores (team_id, total_points, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (team_id) DO UPDATE
		SET total_points = team_scores.total_points + EXCLUDED.total_points,
		    updated_at = NOW()
		RETURNING total_points`,
		teamID, delta).Scan(&total)
	if err != nil {
		return 0, wrapErr(ErrMsgFailedToIncrementTotal, err)
	}
	return total, nil
}
