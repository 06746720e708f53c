package config

import (
	"fmt"
	"os"
	"strings"
)

// EnvSchemaVersion is the .env layout this build understands
const EnvSchemaVersion = "1.0"

type envLookup func(key string) string

type envRequirement struct {
	key  string
	when func(get envLookup) bool
}

type envWarning struct {
	when func(get envLookup) bool
	msg  string
}

func always(envLookup) bool { return true }

func postgresSelected(get envLookup) bool {
	driver := strings.ToLower(get("STORAGE_DRIVER"))
	return driver == "" || driver == StorageDriverPostgres
}

func equals(key, value string) func(envLookup) bool {
	return func(get envLookup) bool { return get(key) == value }
}

var envRequirements = []envRequirement{
	{"API_KEY", always},
	{"ARTICLE_POINTS", always},
	{"PHOTO_POINTS", always},
	{"DB_USER", postgresSelected},
	{"DB_PASSWORD", postgresSelected},
	{"DB_HOST", postgresSelected},
	{"DB_PORT", postgresSelected},
	{"DB_NAME", postgresSelected},
}

var envWarnings = []envWarning{
	{
		when: equals("DB_PASSWORD", "change_this_secure_password"),
		msg:  "DB_PASSWORD appears to be using the example value - please use a secure password",
	},
	{
		when: equals("API_KEY", "generate_with_openssl_rand_hex_32"),
		msg:  "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32",
	},
	{
		when: func(get envLookup) bool {
			return get("DISCORD_TOKEN") != "" && get("DISCORD_MODERATOR_CHANNEL_ID") == ""
		},
		msg: "DISCORD_TOKEN is set but DISCORD_MODERATOR_CHANNEL_ID is empty - Discord notifications are disabled",
	},
	{
		when: func(get envLookup) bool {
			return get("STREAMERBOT_PASSWORD") != "" && get("STREAMERBOT_URL") == ""
		},
		msg: "STREAMERBOT_PASSWORD is set but STREAMERBOT_URL is empty - Streamer.bot notifications are disabled",
	},
	{
		when: func(get envLookup) bool {
			path := get("CONTEST_CONFIG_PATH")
			if path == "" {
				return false
			}
			_, err := os.Stat(path)
			return err != nil
		},
		msg: "CONTEST_CONFIG_PATH does not point to a readable file - startup will fail when syncing teams",
	},
}

// ValidateEnv checks the schema version and that every required variable is set.
// Database variables are only required for the postgres driver.
func ValidateEnv() error {
	return validateEnv(os.Getenv)
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports settings that are legal
// but almost certainly a mistake.
func ValidateEnvWithWarnings() ([]string, error) {
	return validateEnvWithWarnings(os.Getenv)
}

func validateEnv(get envLookup) error {
	switch version := get("ENV_SCHEMA_VERSION"); version {
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", EnvSchemaVersion)
	case EnvSchemaVersion:
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", EnvSchemaVersion, version)
	}

	var missing []string
	for _, r := range envRequirements {
		if r.when(get) && get(r.key) == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func validateEnvWithWarnings(get envLookup) ([]string, error) {
	if err := validateEnv(get); err != nil {
		return nil, err
	}

	var warnings []string
	for _, w := range envWarnings {
		if w.when(get) {
			warnings = append(warnings, w.msg)
		}
	}
	return warnings, nil
}
