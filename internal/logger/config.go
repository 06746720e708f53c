package logger

import (
	"log/slog"
	"strings"
)

// Config describes the process logger
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// ForEnvironment returns the logging defaults for env. Production logs JSON at info,
// development logs text at debug with source locations, anything else logs text at info.
func ForEnvironment(env, serviceName, version string) Config {
	cfg := Config{
		Level:       LevelInfo,
		Format:      FormatText,
		ServiceName: serviceName,
		Version:     version,
		Environment: env,
	}
	switch strings.ToLower(env) {
	case EnvProduction, "production":
		cfg.Format = FormatJSON
	case EnvDevelopment, "development":
		cfg.Level = LevelDebug
		cfg.AddSource = true
	}
	return cfg
}

// Override replaces the level and format with any non-empty values
func (c Config) Override(level, format string) Config {
	if level != "" {
		c.Level = level
	}
	if format != "" {
		c.Format = format
	}
	return c
}

// LogLevel maps Level onto slog; unknown values fall back to info
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn, "warning":
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, FormatJSON)
}

func (c Config) baseAttributes() []any {
	return []any{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
