package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

var (
	testDBConnString string
	testPool         *pgxpool.Pool
)

// newTestStore returns a store on a freshly truncated schema, or skips when no database is available
func newTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}

	_, err := testPool.Exec(context.Background(),
		`TRUNCATE event_log, team_scores, contributions, participants, teams RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return NewStore(testPool)
}

// seedTeamMember creates a team and a participant assigned to it
func seedTeamMember(t *testing.T, s *Store, teamID, participantID string) {
	t.Helper()
	ctx := context.Background()
	if _, err := s.GetTeam(ctx, teamID); err != nil {
		require.NoError(t, s.CreateTeam(ctx, &domain.Team{ID: teamID, Name: teamID}))
	}
	_, err := s.UpsertParticipant(ctx, participantID, participantID)
	require.NoError(t, err)
	_, err = s.AssignTeam(ctx, participantID, teamID)
	require.NoError(t, err)
}
