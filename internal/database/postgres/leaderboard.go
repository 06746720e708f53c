package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

const tallyQuery = `
	SELECT t.team_id, t.name,
	       COALESCE(SUM(c.awarded_points), 0),
	       COALESCE(SUM(c.awarded_points) FILTER (WHERE c.kind = 'article'), 0),
	       COALESCE(SUM(c.awarded_points) FILTER (WHERE c.kind = 'photo'), 0),
	       COUNT(c.contribution_id)
	FROM teams t
	LEFT JOIN contributions c ON c.team_id = t.team_id AND c.state = 'approved'
	GROUP BY t.team_id, t.name
	ORDER BY t.team_id`

const teamTotalsQuery = `
	SELECT t.team_id, t.name, COALESCE(ts.total_points, 0)
	FROM teams t
	LEFT JOIN team_scores ts ON ts.team_id = t.team_id
	ORDER BY t.team_id`

// ListTeamTotals returns every team's running total ordered by team ID
func (s *Store) ListTeamTotals(ctx context.Context) ([]domain.TeamTotal, error) {
	rows, err := s.db.Query(ctx, teamTotalsQuery)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToListTotals, err)
	}
	return collectTotals(rows)
}

func collectTotals(rows pgx.Rows) ([]domain.TeamTotal, error) {
	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TeamTotal, error) {
		var t domain.TeamTotal
		err := row.Scan(&t.TeamID, &t.TeamName, &t.TotalPoints)
		return t, err
	})
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToListTotals, err)
	}
	return totals, nil
}

// GetTeamTotal returns one team's running total
func (s *Store) GetTeamTotal(ctx context.Context, teamID string) (int64, error) {
	var total int64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(ts.total_points, 0)
		FROM teams t
		LEFT JOIN team_scores ts ON ts.team_id = t.team_id
		WHERE t.team_id = $1`, teamID).Scan(&total)
	if err != nil {
		return 0, notFoundOr(ErrMsgFailedToGetTotal, err, domain.ErrTeamNotFound)
	}
	return total, nil
}

// TallyApproved aggregates approved contributions without writing
func (s *Store) TallyApproved(ctx context.Context) ([]domain.TeamTally, error) {
	rows, err := s.db.Query(ctx, tallyQuery)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToTally, err)
	}
	return collectTallies(rows)
}

// RecomputeTotals replaces running totals with the tally. EXCLUSIVE mode lets readers through
// but waits for in-flight approvals, so none is counted twice or lost. The replaced totals are
// read under the same lock.
func (s *Store) RecomputeTotals(ctx context.Context) ([]domain.TeamTotal, []domain.TeamTally, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, wrapErr(ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, `LOCK TABLE team_scores IN EXCLUSIVE MODE`); err != nil {
		return nil, nil, wrapErr(ErrMsgFailedToLockScores, err)
	}

	rows, err := tx.Query(ctx, teamTotalsQuery)
	if err != nil {
		return nil, nil, wrapErr(ErrMsgFailedToListTotals, err)
	}
	before, err := collectTotals(rows)
	if err != nil {
		return nil, nil, err
	}

	rows, err = tx.Query(ctx, tallyQuery)
	if err != nil {
		return nil, nil, wrapErr(ErrMsgFailedToTally, err)
	}
	tallies, err := collectTallies(rows)
	if err != nil {
		return nil, nil, err
	}

	batch := &pgx.Batch{}
	for _, t := range tallies {
		batch.Queue(`
			INSERT INTO team_scores (team_id, total_points, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (team_id) DO UPDATE
			SET total_points = EXCLUDED.total_points, updated_at = NOW()`,
			t.TeamID, t.TotalPoints)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, nil, wrapErr(ErrMsgFailedToWriteTotals, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, wrapErr(ErrMsgFailedToCommitTransaction, err)
	}
	return before, tallies, nil
}

func collectTallies(rows pgx.Rows) ([]domain.TeamTally, error) {
	tallies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TeamTally, error) {
		var t domain.TeamTally
		err := row.Scan(&t.TeamID, &t.TeamName, &t.TotalPoints, &t.ArticlePoints, &t.PhotoPoints, &t.ApprovedCount)
		return t, err
	})
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToTally, err)
	}
	return tallies, nil
}
