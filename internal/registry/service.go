package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

// Service maps external participant identities to teams
type Service interface {
	Resolve(ctx context.Context, participantID string) (*domain.Participant, error)
	// Register creates the participant on first interaction or refreshes its display name.
	// It never changes the team.
	Register(ctx context.Context, participantID, displayName string) (*domain.Participant, error)
	// AssignTeam sets the participant's team once. Assigning the current team again succeeds without change.
	AssignTeam(ctx context.Context, participantID, teamID string) error
	// OverrideTeam reassigns the participant regardless of the current team.
	// Existing contributions keep the team they were submitted under.
	OverrideTeam(ctx context.Context, participantID, teamID string) error

	CreateTeam(ctx context.Context, teamID, name string) (*domain.Team, error)
	GetTeam(ctx context.Context, teamID string) (*domain.Team, error)
	ListTeams(ctx context.Context) ([]domain.Team, error)

	// ImportParticipants registers and assigns each row independently; one bad row never aborts the batch
	ImportParticipants(ctx context.Context, rows []domain.ImportRow) []domain.ImportResult

	GetCacheStats() CacheStats
}

type service struct {
	repo      repository.Registry
	publisher event.Publisher
	cache     *participantCache
}

// NewService creates a registry service. publisher may be nil.
func NewService(repo repository.Registry, publisher event.Publisher, cacheCfg CacheConfig) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		cache:     newParticipantCache(cacheCfg),
	}
}

func (s *service) Resolve(ctx context.Context, participantID string) (*domain.Participant, error) {
	id, err := normalizeID("participant_id", participantID, domain.MaxParticipantIDLength)
	if err != nil {
		return nil, err
	}
	if p, ok := s.cache.Get(id); ok {
		return p, nil
	}

	gen := s.cache.Generation()
	p, err := s.repo.GetParticipant(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.FromContext(ctx).Error(LogErrFailedToResolve, "participant_id", id, "error", err)
		}
		return nil, err
	}
	s.cache.Fill(p, gen)
	return p, nil
}

func (s *service) Register(ctx context.Context, participantID, displayName string) (*domain.Participant, error) {
	log := logger.FromContext(ctx)

	id, err := normalizeID("participant_id", participantID, domain.MaxParticipantIDLength)
	if err != nil {
		return nil, err
	}
	name, err := normalizeName("display_name", displayName, domain.MaxDisplayNameLength)
	if err != nil {
		return nil, err
	}

	gen := s.cache.Generation()
	p, err := s.repo.UpsertParticipant(ctx, id, name)
	if err != nil {
		log.Error(LogErrFailedToRegister, "participant_id", id, "error", err)
		return nil, err
	}
	s.cache.Fill(p, gen)
	log.Info(LogMsgParticipantRegistered, "participant_id", id, "team_id", p.TeamID)
	return p, nil
}

func (s *service) AssignTeam(ctx context.Context, participantID, teamID string) error {
	_, err := s.assign(ctx, participantID, teamID, false)
	return err
}

func (s *service) OverrideTeam(ctx context.Context, participantID, teamID string) error {
	_, err := s.assign(ctx, participantID, teamID, true)
	return err
}

// assign reports whether the participant's team actually changed
func (s *service) assign(ctx context.Context, participantID, teamID string, override bool) (bool, error) {
	log := logger.FromContext(ctx)

	pid, err := normalizeID("participant_id", participantID, domain.MaxParticipantIDLength)
	if err != nil {
		return false, err
	}
	tid, err := normalizeID("team_id", teamID, domain.MaxTeamIDLength)
	if err != nil {
		return false, err
	}

	var previous string
	if override {
		previous, err = s.repo.SetTeam(ctx, pid, tid)
	} else {
		previous, err = s.repo.AssignTeam(ctx, pid, tid)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrAlreadyAssigned) && !errors.Is(err, domain.ErrNotFound) {
			log.Error(LogErrFailedToAssign, "participant_id", pid, "team_id", tid, "override", override, "error", err)
		}
		return false, err
	}
	if previous == tid {
		return false, nil
	}

	s.cache.Invalidate(pid)
	if override {
		log.Info(LogMsgTeamOverridden, "participant_id", pid, "team_id", tid, "previous_team", previous)
	} else {
		log.Info(LogMsgTeamAssigned, "participant_id", pid, "team_id", tid)
	}
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewTeamAssignedEvent(pid, tid, previous, override))
	}
	return true, nil
}

func (s *service) CreateTeam(ctx context.Context, teamID, name string) (*domain.Team, error) {
	id, err := normalizeID("team_id", teamID, domain.MaxTeamIDLength)
	if err != nil {
		return nil, err
	}
	teamName, err := normalizeName("name", name, domain.MaxTeamNameLength)
	if err != nil {
		return nil, err
	}
	if teamName == "" {
		teamName = id
	}

	team := &domain.Team{ID: id, Name: teamName}
	if err := s.repo.CreateTeam(ctx, team); err != nil {
		if !errors.Is(err, domain.ErrTeamExists) {
			logger.FromContext(ctx).Error(LogErrFailedCreateTeam, "team_id", id, "error", err)
		}
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgTeamCreated, "team_id", id, "name", teamName)
	return team, nil
}

func (s *service) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	id, err := normalizeID("team_id", teamID, domain.MaxTeamIDLength)
	if err != nil {
		return nil, err
	}
	return s.repo.GetTeam(ctx, id)
}

func (s *service) ListTeams(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogErrFailedToListTeams, "error", err)
		return nil, err
	}
	return teams, nil
}

func (s *service) ImportParticipants(ctx context.Context, rows []domain.ImportRow) []domain.ImportResult {
	log := logger.FromContext(ctx)
	results := make([]domain.ImportResult, 0, len(rows))
	failed := 0

	for i, row := range rows {
		res := domain.ImportResult{Row: i, ParticipantID: normalize(row.ParticipantID)}
		status, err := s.importRow(ctx, row)
		if err != nil {
			failed++
			res.Status = domain.ImportStatusFailed
			res.Error = err.Error()
			log.Warn(LogMsgImportRowFailed, "row", i, "participant_id", res.ParticipantID, "error", err)
		} else {
			res.Status = status
		}
		results = append(results, res)
	}

	log.Info(LogMsgImportFinished, "rows", len(rows), "failed", failed)
	return results
}

// importRow checks the team before registering so a row naming an unknown team
// leaves no participant behind.
func (s *service) importRow(ctx context.Context, row domain.ImportRow) (domain.ImportStatus, error) {
	if _, err := s.GetTeam(ctx, row.TeamID); err != nil {
		return "", fmt.Errorf("team: %w", err)
	}
	if _, err := s.Register(ctx, row.ParticipantID, row.DisplayName); err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	changed, err := s.assign(ctx, row.ParticipantID, row.TeamID, false)
	if err != nil {
		return "", fmt.Errorf("assign: %w", err)
	}
	if !changed {
		return domain.ImportStatusUnchanged, nil
	}
	return domain.ImportStatusAssigned, nil
}

func (s *service) GetCacheStats() CacheStats {
	return s.cache.Stats()
}
