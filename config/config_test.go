package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetConfig() {
	cfg = AppConfig{}
	loaded = false
}

func TestLoadDefaults(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	c := Load()
	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "release", c.GinMode)
	assert.Equal(t, "./data", c.DataDir)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.Equal(t, "3306", c.DBPort)
	assert.Equal(t, "127.0.0.1", c.RedisHost)
	assert.Equal(t, 6379, c.RedisPort)
	assert.Equal(t, "info", c.LogLevel)
}

func TestEnvOverrides(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	t.Setenv("APP_PORT", "9191")
	t.Setenv("REMOTE_ENABLED", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("REDIS_PORT", "6380")

	c := Load()
	assert.Equal(t, "9191", c.AppPort)
	assert.True(t, c.RemoteEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
	assert.Equal(t, 6380, c.RedisPort)
}

func TestGetLoadsOnce(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	first := Get()
	t.Setenv("APP_PORT", "7070")
	second := Get()
	assert.Equal(t, first.AppPort, second.AppPort, "config is read once at boot")
}
