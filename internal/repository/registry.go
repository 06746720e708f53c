package repository

import (
	"context"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

// Registry defines data access for participants and teams
type Registry interface {
	GetParticipant(ctx context.Context, participantID string) (*domain.Participant, error)
	// UpsertParticipant creates the participant or refreshes its display name. Team is never touched.
	UpsertParticipant(ctx context.Context, participantID, displayName string) (*domain.Participant, error)
	// AssignTeam sets the team only if the participant has none or already has teamID.
	// Returns the previous team ID ("" when unassigned) or domain.ErrAlreadyAssigned.
	AssignTeam(ctx context.Context, participantID, teamID string) (previous string, err error)
	// SetTeam unconditionally reassigns the participant and returns the previous team ID.
	SetTeam(ctx context.Context, participantID, teamID string) (previous string, err error)

	CreateTeam(ctx context.Context, team *domain.Team) error
	GetTeam(ctx context.Context, teamID string) (*domain.Team, error)
	ListTeams(ctx context.Context) ([]domain.Team, error)
}
