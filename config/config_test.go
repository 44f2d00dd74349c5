package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "BUDGET_DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "budget.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8080"}, cfg.CORSOrigins)
	assert.Equal(t, ":8080", cfg.Addr())
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("BUDGET_DB_PATH", ":memory:")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg := FromEnv()
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_UnparsableNumbersFallBack(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := FromEnv()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := &Config{
		Port:            70000,
		DBPath:          " ",
		LogLevel:        "loud",
		LogFormat:       "xml",
		ShutdownTimeout: 0,
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, fragment := range []string{"invalid port 70000", "database path", "invalid log level", "invalid log format", "shutdown timeout"} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestNewLogger_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{LogLevel: "warn", LogFormat: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("month", "202407").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"month":"202407"`)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}
