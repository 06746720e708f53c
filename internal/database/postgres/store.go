package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ContestBot_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implements the contest repositories on PostgreSQL
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new PostgreSQL-backed store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Ping checks connectivity
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return wrapErr("ping", err)
	}
	return nil
}
