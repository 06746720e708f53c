package notify

import "time"

// Dedupe window for at-least-once upstream delivery
const (
	DefaultDedupeSize = 4096
	DefaultDedupeTTL  = time.Hour
)

// Sink channel names, used as metric labels
const (
	ChannelDiscord = "discord"
	ChannelLog     = "log"
)

// Embed colors
const (
	colorPending  = 0x3498db // Blue
	colorApproved = 0x2ecc71 // Green
	colorRejected = 0xe74c3c // Red
)

// Log messages
const (
	LogMsgDuplicateSkipped   = "Duplicate notification skipped"
	LogMsgNotificationQueued = "Notification queued"
	LogMsgNotificationSent   = "Notification delivered"
	LogMsgDeliveryFailed     = "Notification delivery failed"
	LogMsgQueueRejected      = "Notification queue rejected delivery"
	LogMsgUndecodablePayload = "Notification payload could not be decoded"
)
