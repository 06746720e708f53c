package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept when a new session starts
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingContestBot  = "Starting ContestBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	// MigrationTimeout bounds the startup migration run
	MigrationTimeout = 2 * time.Minute

	LogMsgStorageSelected      = "Storage driver selected"
	LogMsgMigrationsSkipped    = "Startup migrations disabled"
	ErrMsgFailedConnectDB      = "failed to connect to database"
	ErrMsgFailedMigrate        = "failed to apply migrations"
	ErrMsgUnknownStorageDriver = "unknown storage driver"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgNotifyDispatcherRegistered = "Notification dispatcher registered"
	LogMsgSSESubscriberRegistered    = "SSE subscriber registered"
	LogMsgDiscordSinkDisabled        = "Discord notifications not configured, using log sink"
	LogMsgStreamerbotSinkEnabled     = "Streamer.bot actions enabled"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
	ErrMsgFailedCreateDiscordSink    = "failed to create discord sink"
	ErrMsgFailedCreateDispatcher     = "failed to create notification dispatcher"
)

// =============================================================================
// Contest Config Sync
// =============================================================================

const (
	LogMsgContestSyncSkipped = "No contest config file, skipping team sync"
	LogMsgContestSynced      = "Contest config synced"
	ErrMsgContestSyncTeam    = "failed to create team"
)

// =============================================================================
// Background Jobs
// =============================================================================

const (
	// JobWorkers is the worker count of the pool shared by scheduled jobs
	JobWorkers = 2

	// JobQueueSize is the queue depth of the scheduled job pool
	JobQueueSize = 16

	JobNameReconcile       = "leaderboard_reconcile"
	JobNameEventLogCleanup = "eventlog_cleanup"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgDiscordSinkCloseFailed     = "Discord sink close failed"
)

// ProbeStreamerbot names the Streamer.bot connection on /readyz
const ProbeStreamerbot = "streamerbot"
