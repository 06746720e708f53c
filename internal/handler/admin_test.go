package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ContestBot_Go/internal/metrics"
	"github.com/osse101/ContestBot_Go/internal/repository"
)

func TestAdminEventsHandler_HandleGetEvents(t *testing.T) {
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Filters passed through", func(t *testing.T) {
		svc := &MockEventLogService{}
		svc.On("RecentEvents", mock.Anything, mock.MatchedBy(func(f repository.EventLogFilter) bool {
			return f.Limit == 10 &&
				f.ParticipantID != nil && *f.ParticipantID == "u1" &&
				f.EventType != nil && *f.EventType == "contribution.decided" &&
				f.Since != nil && f.Since.Equal(since) &&
				f.Until == nil
		})).Return([]repository.EventLogEntry{
			{ID: 1, EventType: "contribution.decided", CreatedAt: since},
		}, nil)

		h := NewAdminEventsHandler(svc)
		w := serve(t, http.MethodGet, "/events",
			"/events?participant_id=u1&event_type=contribution.decided&since=2026-03-01T00:00:00Z&limit=10", nil, h.HandleGetEvents)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[EventsResponse](t, w)
		require.Len(t, resp.Events, 1)
		assert.Equal(t, "2026-03-01T00:00:00Z", resp.Events[0].CreatedAt)
		svc.AssertExpectations(t)
	})

	t.Run("Bad timestamp", func(t *testing.T) {
		svc := &MockEventLogService{}
		h := NewAdminEventsHandler(svc)
		w := serve(t, http.MethodGet, "/events", "/events?until=yesterday", nil, h.HandleGetEvents)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "until")
	})
}

type recordingBroadcaster struct {
	eventType string
	teamID    string
	payload   interface{}
}

func (b *recordingBroadcaster) Broadcast(eventType, teamID string, payload interface{}) {
	b.eventType = eventType
	b.teamID = teamID
	b.payload = payload
}

func TestHandleSSEBroadcast(t *testing.T) {
	hub := &recordingBroadcaster{}
	w := serve(t, http.MethodPost, "/broadcast", "/broadcast",
		`{"type":"announcement","payload":{"text":"voting closes at noon"}}`, HandleSSEBroadcast(hub))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "announcement", hub.eventType)
	assert.Equal(t, map[string]interface{}{"text": "voting closes at noon"}, hub.payload)
	assert.Empty(t, hub.teamID)

	w = serve(t, http.MethodPost, "/broadcast", "/broadcast",
		`{"type":"announcement","team_id":"red","payload":"nice streak"}`, HandleSSEBroadcast(hub))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "red", hub.teamID)

	w = serve(t, http.MethodPost, "/broadcast", "/broadcast", `{"payload":{}}`, HandleSSEBroadcast(hub))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fixedClients int

func (c fixedClients) ClientCount() int { return int(c) }

func TestHandleGetMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{Name: metrics.MetricNameModerationDecisions}, []string{metrics.LabelOutcome})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{Name: metrics.MetricNameModerationConflicts})
	reg.MustRegister(decisions, conflicts)

	decisions.WithLabelValues("approve").Add(3)
	decisions.WithLabelValues("reject").Inc()
	conflicts.Add(2)

	w := serve(t, http.MethodGet, "/metrics", "/metrics", nil, HandleGetMetrics(reg, fixedClients(4)))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[AdminMetricsResponse](t, w)
	assert.Equal(t, 3.0, resp.Contest.DecisionsByOutcome["approve"])
	assert.Equal(t, 1.0, resp.Contest.DecisionsByOutcome["reject"])
	assert.Equal(t, 2.0, resp.Contest.ModerationConflicts)
	assert.Equal(t, 4, resp.SSE.ClientCount)
}
