package streamerbot

import "time"

// Connection settings
const (
	// DefaultURL is the default WebSocket URL for Streamer.bot
	DefaultURL = "ws://127.0.0.1:8080/"

	// DefaultReconnectDelay is the initial delay before attempting to reconnect
	DefaultReconnectDelay = 1 * time.Second

	// MaxReconnectDelay caps the exponential backoff
	MaxReconnectDelay = 30 * time.Second

	ReconnectMultiplier = 2.0

	// MaxConsecutiveFailures is the number of failed dials before the client goes dormant
	MaxConsecutiveFailures = 10

	// HandshakeReadTimeout bounds the wait for an auth challenge after dialing
	HandshakeReadTimeout = 2 * time.Second

	WriteTimeout    = 10 * time.Second
	ReadBufferSize  = 4096
	WriteBufferSize = 4096
)

// Request types for the Streamer.bot WebSocket API
const (
	RequestDoAction     = "DoAction"
	RequestAuthenticate = "Authenticate"
)

// Streamer.bot action names triggered by contest notifications
const (
	ActionContributionSubmitted = "ContestBot_ContributionSubmitted"
	ActionContributionApproved  = "ContestBot_ContributionApproved"
	ActionContributionRejected  = "ContestBot_ContributionRejected"
)

// ChannelStreamerbot is the sink name used in metrics and logs
const ChannelStreamerbot = "streamerbot"

const StatusOK = "ok"

// Log messages
const (
	LogMsgConnecting    = "Connecting to Streamer.bot WebSocket"
	LogMsgConnected     = "Connected to Streamer.bot WebSocket"
	LogMsgReconnecting  = "Reconnecting to Streamer.bot WebSocket"
	LogMsgRestored      = "Streamer.bot connection restored"
	LogMsgAuthRequired  = "Streamer.bot requires authentication"
	LogMsgAuthSuccess   = "Streamer.bot authentication successful"
	LogMsgNoHandshake   = "No initial message from Streamer.bot, assuming no auth required"
	LogMsgSendingAction = "Sending DoAction to Streamer.bot"
	LogMsgReadError     = "Error reading from Streamer.bot WebSocket"
	LogMsgClientStopped = "Streamer.bot client stopped"
	LogMsgGivingUp      = "Streamer.bot connection failed too many times, entering dormant mode"
	LogMsgWakingUp      = "Streamer.bot waking from dormant mode"
	LogMsgDormantRetry  = "Streamer.bot dormant, retrying connection due to outgoing action"
)
