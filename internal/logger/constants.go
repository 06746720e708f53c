package logger

// Accepted LOG_LEVEL values; matching is case-insensitive
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Accepted LOG_FORMAT values
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ENVIRONMENT values with their own logging defaults
const (
	EnvDevelopment = "dev"
	EnvProduction  = "prod"
)

// Attributes stamped on every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
