package config

import "time"

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Defaults
const (
	// empty log level and format defer to the environment's logging defaults
	DefaultLogLevel    = ""
	DefaultLogFormat   = ""
	DefaultEnvironment = "dev"
	DefaultServiceName = "contest-bot"
	DefaultVersion     = "dev"

	DefaultDBMaxConns         = 20
	DefaultDBMaxConnIdleTime  = 5 * time.Minute
	DefaultDBMaxConnLifetime  = 30 * time.Minute
	DefaultDBStatementTimeout = 5 * time.Second

	DefaultReconcileInterval     = 15 * time.Minute
	DefaultEventLogRetentionDays = 90
	DefaultEventLogCleanupEvery  = 24 * time.Hour

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"

	DefaultNotifyWorkers   = 4
	DefaultNotifyQueueSize = 256

	DefaultParticipantCacheSize = 1024
	DefaultParticipantCacheTTL  = 5 * time.Minute
)
