package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ContestBot_Go/internal/database"
	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

const participantColumns = `participant_id, display_name, COALESCE(team_id, ''), created_at, updated_at`

func scanParticipant(row pgx.Row) (*domain.Participant, error) {
	var p domain.Participant
	if err := row.Scan(&p.ID, &p.DisplayName, &p.TeamID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetParticipant retrieves a participant by external ID
func (s *Store) GetParticipant(ctx context.Context, participantID string) (*domain.Participant, error) {
	row := s.db.QueryRow(ctx, `SELECT `+participantColumns+` FROM participants WHERE participant_id = $1`, participantID)
	p, err := scanParticipant(row)
	if err != nil {
		return nil, notFoundOr(ErrMsgFailedToGetParticipant, err, domain.ErrParticipantNotFound)
	}
	return p, nil
}

// UpsertParticipant creates the participant or refreshes a non-empty display name
func (s *Store) UpsertParticipant(ctx context.Context, participantID, displayName string) (*domain.Participant, error) {
	query := `
		INSERT INTO participants (participant_id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (participant_id) DO UPDATE SET
			display_name = CASE WHEN EXCLUDED.display_name = '' THEN participants.display_name ELSE EXCLUDED.display_name END,
			updated_at = CASE
				WHEN EXCLUDED.display_name = '' OR EXCLUDED.display_name = participants.display_name THEN participants.updated_at
				ELSE NOW()
			END
		RETURNING ` + participantColumns

	p, err := scanParticipant(s.db.QueryRow(ctx, query, participantID, displayName))
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToUpsertParticipant, err)
	}
	return p, nil
}

// AssignTeam sets the team once; the same team again is a no-op
func (s *Store) AssignTeam(ctx context.Context, participantID, teamID string) (string, error) {
	return s.setTeam(ctx, participantID, teamID, false)
}

// SetTeam reassigns unconditionally
func (s *Store) SetTeam(ctx context.Context, participantID, teamID string) (string, error) {
	return s.setTeam(ctx, participantID, teamID, true)
}

func (s *Store) setTeam(ctx context.Context, participantID, teamID string, override bool) (string, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", wrapErr(ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	var previous string
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(team_id, '') FROM participants WHERE participant_id = $1 FOR UPDATE`,
		participantID).Scan(&previous)
	if err != nil {
		return "", notFoundOr(ErrMsgFailedToAssignTeam, err, domain.ErrParticipantNotFound)
	}

	var one int
	if err := tx.QueryRow(ctx, `SELECT 1 FROM teams WHERE team_id = $1`, teamID).Scan(&one); err != nil {
		return "", notFoundOr(ErrMsgFailedToAssignTeam, err, domain.ErrTeamNotFound)
	}

	if previous == teamID {
		return previous, nil
	}
	if previous != "" && !override {
		return previous, domain.ErrAlreadyAssigned
	}

	if _, err := tx.Exec(ctx,
		`UPDATE participants SET team_id = $2, updated_at = NOW() WHERE participant_id = $1`,
		participantID, teamID); err != nil {
		return "", wrapErr(ErrMsgFailedToAssignTeam, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", wrapErr(ErrMsgFailedToCommitTransaction, err)
	}
	return previous, nil
}

// CreateTeam inserts a team together with its zero score row
func (s *Store) CreateTeam(ctx context.Context, team *domain.Team) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return wrapErr(ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	err = tx.QueryRow(ctx,
		`INSERT INTO teams (team_id, name) VALUES ($1, $2) RETURNING created_at`,
		team.ID, team.Name).Scan(&team.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrTeamExists, team.ID)
		}
		return wrapErr(ErrMsgFailedToCreateTeam, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO team_scores (team_id, total_points) VALUES ($1, 0) ON CONFLICT (team_id) DO NOTHING`,
		team.ID); err != nil {
		return wrapErr(ErrMsgFailedToCreateTeam, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapErr(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// GetTeam retrieves a team by ID
func (s *Store) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	var t domain.Team
	err := s.db.QueryRow(ctx, `SELECT team_id, name, created_at FROM teams WHERE team_id = $1`, teamID).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		return nil, notFoundOr(ErrMsgFailedToGetTeam, err, domain.ErrTeamNotFound)
	}
	return &t, nil
}

// ListTeams returns all teams ordered by ID
func (s *Store) ListTeams(ctx context.Context) ([]domain.Team, error) {
	rows, err := s.db.Query(ctx, `SELECT team_id, name, created_at FROM teams ORDER BY team_id`)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToListTeams, err)
	}
	teams, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Team, error) {
		var t domain.Team
		err := row.Scan(&t.ID, &t.Name, &t.CreatedAt)
		return t, err
	})
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToListTeams, err)
	}
	return teams, nil
}
