package eventlog

// JSON payload field keys
const (
	PayloadKeyParticipantID = "participant_id"
)

// Query defaults
const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 500
)

// Log messages - service events
const (
	LogMsgEventPayloadNotMap = "Event payload could not be decoded, skipping log"
	LogMsgFailedToLogEvent   = "Failed to log event"
	LogMsgEventLogged        = "Event logged"
)

// Log messages - cleanup job
const (
	LogMsgCleanupDisabled     = "Event log retention disabled, nothing pruned"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log pruned"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldParticipantID = "participant_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retention_days"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deleted_count"
)
