package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  int
	}{
		{"unset uses default", nil, 42},
		{"valid integer", strPtr("100"), 100},
		{"negative integer", strPtr("-10"), -10},
		{"zero", strPtr("0"), 0},
		{"invalid integer uses default", strPtr("not-a-number"), 42},
		{"float uses default", strPtr("42.5"), 42},
		{"empty uses default", strPtr(""), 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setOrUnset(t, "TEST_INT_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  time.Duration
	}{
		{"unset uses default", nil, 5 * time.Minute},
		{"minutes", strPtr("10m"), 10 * time.Minute},
		{"complex", strPtr("1h30m45s"), time.Hour + 30*time.Minute + 45*time.Second},
		{"milliseconds", strPtr("500ms"), 500 * time.Millisecond},
		{"invalid uses default", strPtr("not-a-duration"), 5 * time.Minute},
		{"plain number uses default", strPtr("100"), 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setOrUnset(t, "TEST_DURATION_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute))
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	setOrUnset(t, "TEST_BOOL_VAR", nil)
	assert.True(t, getEnvAsBool("TEST_BOOL_VAR", true))

	t.Setenv("TEST_BOOL_VAR", "false")
	assert.False(t, getEnvAsBool("TEST_BOOL_VAR", true))

	t.Setenv("TEST_BOOL_VAR", "nope")
	assert.True(t, getEnvAsBool("TEST_BOOL_VAR", true))
}

func TestGetEnvAsPositiveInt64(t *testing.T) {
	setOrUnset(t, "TEST_POINTS", nil)
	v, err := getEnvAsPositiveInt64("TEST_POINTS", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), v)

	t.Setenv("TEST_POINTS", "12")
	v, err = getEnvAsPositiveInt64("TEST_POINTS", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(12), v)

	t.Setenv("TEST_POINTS", "0")
	_, err = getEnvAsPositiveInt64("TEST_POINTS", 9)
	assert.Error(t, err)
}

func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("loads default database pool configuration", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
		assert.Equal(t, 5*time.Second, cfg.DBStatementTimeout)
	})

	t.Run("loads custom database pool configuration", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")
		t.Setenv("DB_STATEMENT_TIMEOUT", "250ms")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
		assert.Equal(t, 250*time.Millisecond, cfg.DBStatementTimeout)
	})
}

func strPtr(s string) *string { return &s }

func setOrUnset(t *testing.T, key string, value *string) {
	t.Helper()
	if value == nil {
		t.Setenv(key, "")
		os.Unsetenv(key)
		return
	}
	t.Setenv(key, *value)
}
