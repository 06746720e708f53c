package handler

import (
	"net/http"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/submission"
)

// SubmitRequest carries a new contribution from the chat transport
type SubmitRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,notblank,max=100"`
	Kind          string `json:"kind" validate:"required,kind"`
	Payload       string `json:"payload" validate:"required,notblank,max=2048"`
	Caption       string `json:"caption" validate:"max=1000"`
}

// PendingResponse is one page of the pending queue
type PendingResponse struct {
	Contributions []domain.Contribution `json:"contributions"`
	Count         int                   `json:"count"`
}

// HandleSubmit registers a pending contribution
// @Summary Submit contribution
// @Description Stores a pending article or photo under the participant's current team.
// @Tags contributions
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Contribution"
// @Success 201 {object} domain.Contribution
// @Failure 400 {object} ValidationErrorResponse
// @Failure 403 {object} ErrorResponse "participant has no team"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "duplicate payload"
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/contributions [post]
func HandleSubmit(svc submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Submit"); err != nil {
			return
		}

		c, err := svc.Submit(r.Context(), req.ParticipantID, domain.ContributionKind(req.Kind), req.Payload, req.Caption)
		if err != nil {
			respondServiceError(w, r, "submit", err)
			return
		}

		logger.FromContext(r.Context()).Debug("Contribution accepted", "contribution_id", c.ID)
		respondJSON(w, http.StatusCreated, c)
	}
}

// HandleGetContribution fetches a contribution by id
// @Summary Get contribution
// @Tags contributions
// @Produce json
// @Param id path int true "Contribution ID"
// @Success 200 {object} domain.Contribution
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/contributions/{id} [get]
func HandleGetContribution(svc submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contributionIDParam(w, r)
		if !ok {
			return
		}

		c, err := svc.Get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "get contribution", err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandleListPending returns the oldest pending contributions
// @Summary List pending contributions
// @Tags contributions
// @Produce json
// @Param kind query string false "article or photo"
// @Param team query string false "Team ID"
// @Param limit query int false "Max results (1-1000)"
// @Success 200 {object} PendingResponse
// @Router /api/v1/contributions/pending [get]
func HandleListPending(svc submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(w, r, DefaultListLimit, MaxListLimit)
		if !ok {
			return
		}

		filter := domain.PendingFilter{TeamID: r.URL.Query().Get("team")}
		if raw := r.URL.Query().Get("kind"); raw != "" {
			kind, err := domain.ParseKind(raw)
			if err != nil {
				respondServiceError(w, r, "list pending", err)
				return
			}
			filter.Kind = kind
		}

		out := make([]domain.Contribution, 0, limit)
		for c, err := range svc.ListPending(r.Context(), filter) {
			if err != nil {
				respondServiceError(w, r, "list pending", err)
				return
			}
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}

		respondJSON(w, http.StatusOK, PendingResponse{Contributions: out, Count: len(out)})
	}
}
