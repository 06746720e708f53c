package sse

import (
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/osse101/ContestBot_Go/internal/logger"
)

// Handler streams hub events. ?types=a,b limits the stream to those event types and
// ?team=<id> to one team's events plus contest-wide ones such as leaderboard updates.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		// nginx buffers responses unless told otherwise
		w.Header().Set("X-Accel-Buffering", "no")

		filter := parseFilter(r)
		client := hub.Register(filter)
		log.Info(LogMsgClientConnected, "client_id", client.ID, "filters", filter.Types, "team_id", filter.TeamID)
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID, "dropped", client.Dropped())
		}()

		write := func(evt Event) bool {
			msg, err := FormatSSEMessage(evt)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		if !write(Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   ConnectedPayload{ClientID: client.ID, Filters: filter.Types, TeamID: filter.TeamID},
		}) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case evt, ok := <-client.EventChannel:
				if !ok {
					// hub shutting down
					return
				}
				if !write(evt) {
					return
				}

			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}

func parseFilter(r *http.Request) Filter {
	q := r.URL.Query()
	types := strings.FieldsFunc(q.Get("types"), func(c rune) bool { return c == ',' || unicode.IsSpace(c) })
	return Filter{Types: types, TeamID: strings.TrimSpace(q.Get("team"))}
}
