package handler

import (
	"net/http"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/moderation"
)

// DecisionRequest is a moderator verdict on one contribution
type DecisionRequest struct {
	ModeratorID string `json:"moderator_id" validate:"required,notblank,max=100"`
	Outcome     string `json:"outcome" validate:"required,outcome"`
	Reason      string `json:"reason" validate:"max=500"`
}

// HandleDecide approves or rejects a pending contribution
// @Summary Decide contribution
// @Description The first decision wins. Later decisions return 409 and change nothing.
// @Tags contributions
// @Accept json
// @Produce json
// @Param id path int true "Contribution ID"
// @Param request body DecisionRequest true "Decision"
// @Success 200 {object} moderation.Outcome
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "already decided"
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/contributions/{id}/decision [post]
func HandleDecide(svc moderation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contributionIDParam(w, r)
		if !ok {
			return
		}

		var req DecisionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Decide"); err != nil {
			return
		}

		outcome, err := svc.Decide(r.Context(), domain.ModerationDecision{
			ModeratorID:    req.ModeratorID,
			ContributionID: id,
			Outcome:        domain.DecisionOutcome(req.Outcome),
			Reason:         req.Reason,
		})
		if err != nil {
			respondServiceError(w, r, "decide", err)
			return
		}
		respondJSON(w, http.StatusOK, outcome)
	}
}
