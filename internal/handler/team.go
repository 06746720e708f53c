package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/leaderboard"
	"github.com/osse101/ContestBot_Go/internal/registry"
)

// CreateTeamRequest declares a team. Name defaults to the id.
type CreateTeamRequest struct {
	TeamID string `json:"team_id" validate:"required,notblank,max=100"`
	Name   string `json:"name" validate:"max=100"`
}

// TeamsResponse lists every team
type TeamsResponse struct {
	Teams []domain.Team `json:"teams"`
}

// TeamTotalResponse is a single team's running total
type TeamTotalResponse struct {
	TeamID      string `json:"team_id"`
	TotalPoints int64  `json:"total_points"`
}

// HandleCreateTeam creates a team
// @Summary Create team
// @Tags teams
// @Accept json
// @Produce json
// @Param request body CreateTeamRequest true "Team"
// @Success 201 {object} domain.Team
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/teams [post]
func HandleCreateTeam(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTeamRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create team"); err != nil {
			return
		}

		team, err := svc.CreateTeam(r.Context(), req.TeamID, req.Name)
		if err != nil {
			respondServiceError(w, r, "create team", err)
			return
		}
		respondJSON(w, http.StatusCreated, team)
	}
}

// HandleListTeams lists teams
// @Summary List teams
// @Tags teams
// @Produce json
// @Success 200 {object} TeamsResponse
// @Router /api/v1/teams [get]
func HandleListTeams(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := svc.ListTeams(r.Context())
		if err != nil {
			respondServiceError(w, r, "list teams", err)
			return
		}
		if teams == nil {
			teams = []domain.Team{}
		}
		respondJSON(w, http.StatusOK, TeamsResponse{Teams: teams})
	}
}

// HandleTeamTotal returns a team's running total
// @Summary Team total
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} TeamTotalResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/teams/{id}/total [get]
func HandleTeamTotal(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "id")
		total, err := svc.TeamTotal(r.Context(), teamID)
		if err != nil {
			respondServiceError(w, r, "team total", err)
			return
		}
		respondJSON(w, http.StatusOK, TeamTotalResponse{TeamID: teamID, TotalPoints: total})
	}
}
