package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/registry"
)

// RegisterParticipantRequest is sent on a participant's first interaction
type RegisterParticipantRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,notblank,max=100"`
	DisplayName   string `json:"display_name" validate:"max=100,excludesall=\x00"`
}

// AssignTeamRequest names the team for an assignment or override
type AssignTeamRequest struct {
	TeamID string `json:"team_id" validate:"required,notblank,max=100"`
}

// ImportParticipantsRequest is a batch of participant/team rows
type ImportParticipantsRequest struct {
	Rows []domain.ImportRow `json:"rows"`
}

// ImportParticipantsResponse reports each row plus summary counts
type ImportParticipantsResponse struct {
	Assigned  int                   `json:"assigned"`
	Unchanged int                   `json:"unchanged"`
	Failed    int                   `json:"failed"`
	Results   []domain.ImportResult `json:"results"`
}

// HandleRegisterParticipant creates a participant or refreshes its display name
// @Summary Register participant
// @Description Creates the participant on first interaction. Never changes the team.
// @Tags participants
// @Accept json
// @Produce json
// @Param request body RegisterParticipantRequest true "Participant"
// @Success 200 {object} domain.Participant
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/participants [post]
func HandleRegisterParticipant(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterParticipantRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register participant"); err != nil {
			return
		}

		p, err := svc.Register(r.Context(), req.ParticipantID, req.DisplayName)
		if err != nil {
			respondServiceError(w, r, "register participant", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// HandleResolveParticipant looks a participant up by platform id
// @Summary Resolve participant
// @Tags participants
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} domain.Participant
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/participants/{id} [get]
func HandleResolveParticipant(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Resolve(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, "resolve participant", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// HandleAssignTeam sets a participant's team once
// @Summary Assign team
// @Description Assigning the current team again is a no-op; a different team returns 409.
// @Tags participants
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param request body AssignTeamRequest true "Team"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/participants/{id}/team [post]
func HandleAssignTeam(svc registry.Service) http.HandlerFunc {
	return handleTeamChange(svc.AssignTeam, "assign team", MsgTeamAssigned)
}

// HandleOverrideTeam reassigns a participant regardless of the current team
// @Summary Override team
// @Description Privileged reassignment. Existing contributions keep their original team.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param request body AssignTeamRequest true "Team"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/participants/{id}/team [put]
func HandleOverrideTeam(svc registry.Service) http.HandlerFunc {
	return handleTeamChange(svc.OverrideTeam, "override team", MsgTeamOverridden)
}

func handleTeamChange(change func(ctx context.Context, participantID, teamID string) error, op, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AssignTeamRequest
		if err := DecodeAndValidateRequest(r, w, &req, op); err != nil {
			return
		}

		participantID := chi.URLParam(r, "id")
		if err := change(r.Context(), participantID, req.TeamID); err != nil {
			respondServiceError(w, r, op, err)
			return
		}

		logger.FromContext(r.Context()).Info(msg, "participant_id", participantID, "team_id", req.TeamID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: msg})
	}
}

// HandleImportParticipants registers and assigns a batch of participants
// @Summary Bulk import participants
// @Description Rows are applied independently. Partial failure still returns 200 with per-row results.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ImportParticipantsRequest true "Rows"
// @Success 200 {object} ImportParticipantsResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/admin/participants/import [post]
func HandleImportParticipants(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ImportParticipantsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Import participants"); err != nil {
			return
		}
		if len(req.Rows) == 0 {
			respondError(w, http.StatusBadRequest, ErrMsgEmptyImport)
			return
		}
		if len(req.Rows) > MaxImportRows {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgImportTooLarge, MaxImportRows))
			return
		}

		results := svc.ImportParticipants(r.Context(), req.Rows)

		resp := ImportParticipantsResponse{Results: results}
		for _, res := range results {
			switch res.Status {
			case domain.ImportStatusAssigned:
				resp.Assigned++
			case domain.ImportStatusUnchanged:
				resp.Unchanged++
			case domain.ImportStatusFailed:
				resp.Failed++
			}
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
