package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv_Defaults(t *testing.T) {
	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8972", cfg.HTTP.ListenAddr)
	assert.Equal(t, "http://127.0.0.1:8000/api/translate_subtitle/", cfg.Translate.APIURL)
	assert.Equal(t, 120, cfg.Translate.Timeout)
	assert.Equal(t, 15, cfg.Fetch.Timeout)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.Equal(t, 120, cfg.Session.TTLMinutes)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewFromEnv_EnvOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("DATA_DIR", "/var/lib/dualsub")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.ListenAddr)
	assert.Equal(t, 30, cfg.Session.TTLMinutes)
	assert.Equal(t, "/var/lib/dualsub", cfg.Storage.DataDir)
	assert.Equal(t, "/var/lib/dualsub/dualsub.db", cfg.Storage.DBPath())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestNewFromEnv_Options(t *testing.T) {
	cfg, err := NewFromEnv(func(c *Config) {
		c.Translate.APIURL = "http://translate.test/api"
	})
	require.NoError(t, err)
	assert.Equal(t, "http://translate.test/api", cfg.Translate.APIURL)
}

func TestNewFromEnv_InvalidCronExpr(t *testing.T) {
	t.Setenv("JANITOR_CRON_EXPR", "bad cron")

	_, err := NewFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JANITOR_CRON_EXPR")
}

func TestNewFromEnv_InvalidTTL(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "0")

	_, err := NewFromEnv()
	assert.Error(t, err)
}
