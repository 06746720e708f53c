package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// ApplicationName tags contest sessions in pg_stat_activity unless the DSN sets one
	ApplicationName = "contest-bot"
)

// Migration constants
const (
	MigrationsDir    = "migrations"
	MigrationDialect = "postgres"
)

// Postgres error codes the repositories branch on
const (
	PgCodeUniqueViolation     = "23505"
	PgCodeForeignKeyViolation = "23503"
	PgCodeLockNotAvailable    = "55P03"
	PgCodeQueryCanceled       = "57014"
	PgCodeAdminShutdown       = "57P01"
	PgCodeCannotConnectNow    = "57P03"
	// PgClassConnection is the "08" connection exception class
	PgClassConnection = "08"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString   = "failed to parse connection string"
	ErrMsgFailedToCreatePool        = "failed to create connection pool"
	ErrMsgFailedToPingDatabase      = "failed to ping database"
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToSetDialect        = "failed to set migration dialect"
	ErrMsgFailedToMigrate           = "failed to apply migrations"
	ErrMsgFailedToRollbackMigration = "failed to roll back migration"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
