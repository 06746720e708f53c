package handler

import (
	"net/http"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/leaderboard"
)

// LeaderboardResponse is the ranked standings
type LeaderboardResponse struct {
	Standings []domain.LeaderboardEntry `json:"standings"`
}

// BreakdownResponse carries per-kind points per team
type BreakdownResponse struct {
	Teams []domain.TeamTally `json:"teams"`
}

// VerifyResponse lists teams whose running total drifted
type VerifyResponse struct {
	Consistent bool           `json:"consistent"`
	Drift      []domain.Drift `json:"drift"`
}

// HandleCurrentStanding returns ranked team totals
// @Summary Current standings
// @Description Competition ranking. Ties share a rank and are ordered by team id.
// @Tags leaderboard
// @Produce json
// @Success 200 {object} LeaderboardResponse
// @Router /api/v1/leaderboard [get]
func HandleCurrentStanding(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := svc.CurrentStanding(r.Context())
		if err != nil {
			respondServiceError(w, r, "current standing", err)
			return
		}
		if standings == nil {
			standings = []domain.LeaderboardEntry{}
		}
		respondJSON(w, http.StatusOK, LeaderboardResponse{Standings: standings})
	}
}

// HandleBreakdown returns per-kind points for every team
// @Summary Leaderboard breakdown
// @Tags leaderboard
// @Produce json
// @Success 200 {object} BreakdownResponse
// @Router /api/v1/leaderboard/breakdown [get]
func HandleBreakdown(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := svc.Breakdown(r.Context())
		if err != nil {
			respondServiceError(w, r, "breakdown", err)
			return
		}
		if teams == nil {
			teams = []domain.TeamTally{}
		}
		respondJSON(w, http.StatusOK, BreakdownResponse{Teams: teams})
	}
}

// HandleRecompute rebuilds running totals from approved contributions
// @Summary Recompute leaderboard
// @Tags admin
// @Produce json
// @Success 200 {object} BreakdownResponse
// @Router /api/v1/admin/leaderboard/recompute [post]
func HandleRecompute(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tallies, err := svc.Recompute(r.Context())
		if err != nil {
			respondServiceError(w, r, "recompute", err)
			return
		}
		if tallies == nil {
			tallies = []domain.TeamTally{}
		}
		respondJSON(w, http.StatusOK, BreakdownResponse{Teams: tallies})
	}
}

// HandleVerify compares running totals against a fresh tally without writing
// @Summary Verify leaderboard
// @Tags admin
// @Produce json
// @Success 200 {object} VerifyResponse
// @Router /api/v1/admin/leaderboard/verify [get]
func HandleVerify(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drift, err := svc.Verify(r.Context())
		if err != nil {
			respondServiceError(w, r, "verify", err)
			return
		}
		if drift == nil {
			drift = []domain.Drift{}
		}
		respondJSON(w, http.StatusOK, VerifyResponse{Consistent: len(drift) == 0, Drift: drift})
	}
}
