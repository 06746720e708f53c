package sse

import "time"

const (
	BroadcastBufferSize = 100
	// ClientEventBuffer bounds each client's backlog; a slow client loses events
	// beyond it rather than stalling the hub.
	ClientEventBuffer = 50

	KeepaliveInterval = 30 * time.Second
)

// Stream-only event types. Contribution events keep their bus names.
const (
	EventTypeConnected          = "connected"
	EventTypeLeaderboardUpdated = "leaderboard.updated"
	EventTypeKeepalive          = "keepalive"
)

const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgBroadcastDropped   = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgStandingFailed     = "Failed to load standings for SSE"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"
)
