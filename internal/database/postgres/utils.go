package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ContestBot_Go/internal/database"
	"github.com/osse101/ContestBot_Go/internal/domain"
)

// wrapErr prefixes err with msg and tags connectivity failures as domain.ErrStorageUnavailable
func wrapErr(msg string, err error) error {
	if database.IsUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", msg, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// notFoundOr returns notFound for pgx.ErrNoRows and a wrapped error otherwise
func notFoundOr(msg string, err error, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return wrapErr(msg, err)
}

func scanContribution(row pgx.Row) (*domain.Contribution, error) {
	var c domain.Contribution
	var kind, state string
	err := row.Scan(
		&c.ID,
		&c.ParticipantID,
		&c.TeamID,
		&kind,
		&c.Payload,
		&c.PayloadKey,
		&c.Caption,
		&c.SubmittedAt,
		&state,
		&c.ModeratorID,
		&c.DecidedAt,
		&c.RejectReason,
		&c.AwardedPoints,
	)
	if err != nil {
		return nil, err
	}
	c.Kind = domain.ContributionKind(kind)
	c.State = domain.ContributionState(state)
	return &c, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
