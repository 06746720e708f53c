package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIKey         string // API key for authentication
	TrustedProxies []string

	LogLevel    string
	LogFormat   string
	LogDir      string // empty logs to stdout only
	Environment string
	ServiceName string
	Version     string

	StorageDriver      string // "postgres" or "memory"
	DBUser             string
	DBPassword         string
	DBHost             string
	DBPort             string
	DBName             string
	DBMaxConns         int
	DBMaxConnIdleTime  time.Duration
	DBMaxConnLifetime  time.Duration
	DBStatementTimeout time.Duration
	MigrateOnStart     bool

	// Contest rules
	ArticlePoints   int64
	PhotoPoints     int64
	DuplicateWindow time.Duration // 0 means the whole contest
	PendingPageSize int

	// Background work
	ReconcileInterval     time.Duration // 0 disables the reconcile job
	EventLogRetentionDays int
	EventLogCleanupEvery  time.Duration

	// Event publishing
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// Notifications
	DiscordToken              string
	DiscordModeratorChannelID string
	StreamerbotURL            string
	StreamerbotPassword       string
	NotifyWorkers             int
	NotifyQueueSize           int

	// Optional JSON file with teams and roster applied at startup
	ContestConfigPath string

	// Registry cache
	ParticipantCacheSize int
	ParticipantCacheTTL  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),

		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", ""),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		StorageDriver:      strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBName:             getEnv("DB_NAME", "contestbot"),
		DBMaxConns:         getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		DBStatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", DefaultDBStatementTimeout),
		MigrateOnStart:     getEnvAsBool("MIGRATE_ON_START", true),

		PendingPageSize: getEnvAsInt("PENDING_PAGE_SIZE", domain.DefaultPendingPageSize),

		ReconcileInterval:     getEnvAsDuration("RECONCILE_INTERVAL", DefaultReconcileInterval),
		EventLogRetentionDays: getEnvAsInt("EVENT_LOG_RETENTION_DAYS", DefaultEventLogRetentionDays),
		EventLogCleanupEvery:  getEnvAsDuration("EVENT_LOG_CLEANUP_INTERVAL", DefaultEventLogCleanupEvery),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEAD_LETTER_PATH", DefaultEventDeadLetterPath),

		DiscordToken:              getEnv("DISCORD_TOKEN", ""),
		DiscordModeratorChannelID: getEnv("DISCORD_MODERATOR_CHANNEL_ID", ""),
		StreamerbotURL:            getEnv("STREAMERBOT_URL", ""),
		StreamerbotPassword:       getEnv("STREAMERBOT_PASSWORD", ""),
		NotifyWorkers:             getEnvAsInt("NOTIFY_WORKERS", DefaultNotifyWorkers),
		NotifyQueueSize:           getEnvAsInt("NOTIFY_QUEUE_SIZE", DefaultNotifyQueueSize),

		ContestConfigPath: getEnv("CONTEST_CONFIG_PATH", ""),

		ParticipantCacheSize: getEnvAsInt("PARTICIPANT_CACHE_SIZE", DefaultParticipantCacheSize),
		ParticipantCacheTTL:  getEnvAsDuration("PARTICIPANT_CACHE_TTL", DefaultParticipantCacheTTL),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.ArticlePoints, err = getEnvAsPositiveInt64("ARTICLE_POINTS", domain.DefaultArticlePoints); err != nil {
		return nil, err
	}
	if cfg.PhotoPoints, err = getEnvAsPositiveInt64("PHOTO_POINTS", domain.DefaultPhotoPoints); err != nil {
		return nil, err
	}

	window := getEnv("DUPLICATE_WINDOW", "0")
	if window == "0" {
		cfg.DuplicateWindow = domain.LifetimeWindow
	} else {
		d, err := time.ParseDuration(window)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid DUPLICATE_WINDOW value %q: must be a non-negative duration", window)
		}
		cfg.DuplicateWindow = d
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: expected %s or %s", cfg.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}

	if cfg.PendingPageSize <= 0 {
		cfg.PendingPageSize = domain.DefaultPendingPageSize
	}

	return cfg, nil
}

// PointsTable returns the kind-to-points award table
func (c *Config) PointsTable() domain.PointsTable {
	return domain.PointsTable{
		domain.KindArticle: c.ArticlePoints,
		domain.KindPhoto:   c.PhotoPoints,
	}
}

// DiscordEnabled reports whether Discord notifications are configured
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordModeratorChannelID != ""
}

// StreamerbotEnabled reports whether Streamer.bot actions are configured
func (c *Config) StreamerbotEnabled() bool {
	return c.StreamerbotURL != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsPositiveInt64 is strict: a set but malformed or non-positive value is an error.
func getEnvAsPositiveInt64(key string, defaultValue int64) (int64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be a positive integer", key, raw)
	}
	return v, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
