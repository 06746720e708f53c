package sse

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/ContestBot_Go/internal/logger"
)

// Event is one message on a stream. TeamID is empty for contest-wide messages.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	TeamID    string      `json:"team_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Filter narrows what a client receives. Zero value receives everything.
type Filter struct {
	Types  []string
	TeamID string // only this team's events plus contest-wide ones
}

// Client is a connected stream consumer
type Client struct {
	ID           string
	EventChannel chan Event

	types   map[string]struct{}
	teamID  string
	dropped atomic.Int64
}

// Dropped reports how many events were skipped because the client fell behind
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

func (c *Client) wants(evt Event) bool {
	if c.types != nil {
		if _, ok := c.types[evt.Type]; !ok {
			return false
		}
	}
	return c.teamID == "" || evt.TeamID == "" || evt.TeamID == c.teamID
}

// Hub fans contest events out to stream clients
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	stopped bool

	broadcast chan Event
	shutdown  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewHub creates a hub. Call Start before broadcasting.
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan Event, BroadcastBufferSize),
		shutdown:  make(chan struct{}),
	}
}

// Start runs the fan-out loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the fan-out loop and closes every client channel. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.shutdown) })
	h.wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for id, c := range h.clients {
		close(c.EventChannel)
		delete(h.clients, id)
	}
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case evt := <-h.broadcast:
			h.fanOut(evt)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) fanOut(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if !c.wants(evt) {
			continue
		}
		// a slow client misses events rather than stalling the others
		select {
		case c.EventChannel <- evt:
		default:
			c.dropped.Add(1)
		}
	}
}

// Register adds a client. It is visible to the next broadcast as soon as Register returns.
// After Stop the returned client's channel is already closed.
func (h *Hub) Register(f Filter) *Client {
	c := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
		teamID:       f.TeamID,
	}
	if len(f.Types) > 0 {
		c.types = make(map[string]struct{}, len(f.Types))
		for _, t := range f.Types {
			c.types[t] = struct{}{}
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		close(c.EventChannel)
		return c
	}
	h.clients[c.ID] = c
	return c
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		close(c.EventChannel)
		delete(h.clients, clientID)
	}
}

// Broadcast queues an event for every interested client. teamID may be empty.
func (h *Hub) Broadcast(eventType, teamID string, payload interface{}) {
	evt := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		TeamID:    teamID,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- evt:
	default:
		logger.Warn(LogMsgBroadcastDropped, "event_type", eventType)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders an event in text/event-stream framing
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("id: %s\nevent: %s\ndata: %s\n\n", evt.ID, evt.Type, data)), nil
}
