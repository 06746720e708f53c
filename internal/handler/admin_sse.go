package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osse101/ContestBot_Go/internal/sse"
)

// AdminSSEBroadcastRequest represents the request to broadcast an SSE event
type AdminSSEBroadcastRequest struct {
	Type    string          `json:"type" validate:"required,notblank,max=100"`
	TeamID  string          `json:"team_id,omitempty" validate:"max=100"`
	Payload json.RawMessage `json:"payload"`
}

// Broadcaster pushes ad-hoc events to connected console clients
type Broadcaster interface {
	Broadcast(eventType, teamID string, payload interface{})
}

var _ Broadcaster = (*sse.Hub)(nil)

// HandleSSEBroadcast sends a manual event to the streams, e.g. an announcement.
// With team_id set only that team's dashboards and unscoped streams receive it.
// @Summary Broadcast console event
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminSSEBroadcastRequest true "Event"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/sse/broadcast [post]
func HandleSSEBroadcast(hub Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminSSEBroadcastRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Broadcast SSE"); err != nil {
			return
		}

		var payload interface{}
		if len(req.Payload) > 0 {
			if err := json.Unmarshal(req.Payload, &payload); err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidPayloadJSON)
				return
			}
		}

		hub.Broadcast(req.Type, req.TeamID, payload)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEventBroadcasted})
	}
}
