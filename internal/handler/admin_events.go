package handler

import (
	"net/http"
	"time"

	"github.com/osse101/ContestBot_Go/internal/eventlog"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

// AdminEventsHandler serves the audit log of contest events
type AdminEventsHandler struct {
	eventlogService eventlog.Service
}

// NewAdminEventsHandler creates a new admin events handler
func NewAdminEventsHandler(eventlogService eventlog.Service) *AdminEventsHandler {
	return &AdminEventsHandler{eventlogService: eventlogService}
}

// EventsResponse contains event log query results
type EventsResponse struct {
	Events []EventLogEntry `json:"events"`
}

// EventLogEntry represents a single event log entry
type EventLogEntry struct {
	ID            int64       `json:"id"`
	EventType     string      `json:"event_type"`
	ParticipantID *string     `json:"participant_id,omitempty"`
	Payload       interface{} `json:"payload"`
	Metadata      interface{} `json:"metadata,omitempty"`
	CreatedAt     string      `json:"created_at"`
}

// HandleGetEvents returns recent events, newest first
// @Summary Recent contest events
// @Tags admin
// @Produce json
// @Param participant_id query string false "Participant ID"
// @Param event_type query string false "Event type"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param limit query int false "Max results (1-1000)"
// @Success 200 {object} EventsResponse
// @Router /api/v1/admin/events [get]
func (h *AdminEventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, ok := parseLimit(w, r, DefaultListLimit, MaxListLimit)
	if !ok {
		return
	}
	filter := repository.EventLogFilter{Limit: limit}

	if participantID := query.Get("participant_id"); participantID != "" {
		filter.ParticipantID = &participantID
	}
	if eventType := query.Get("event_type"); eventType != "" {
		filter.EventType = &eventType
	}
	if filter.Since, ok = parseTimeParam(w, r, "since"); !ok {
		return
	}
	if filter.Until, ok = parseTimeParam(w, r, "until"); !ok {
		return
	}

	events, err := h.eventlogService.RecentEvents(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "recent events", err)
		return
	}

	entries := make([]EventLogEntry, len(events))
	for i, evt := range events {
		entries[i] = EventLogEntry{
			ID:            evt.ID,
			EventType:     evt.EventType,
			ParticipantID: evt.ParticipantID,
			Payload:       evt.Payload,
			Metadata:      evt.Metadata,
			CreatedAt:     evt.CreatedAt.Format(time.RFC3339),
		}
	}

	respondJSON(w, http.StatusOK, EventsResponse{Events: entries})
}
