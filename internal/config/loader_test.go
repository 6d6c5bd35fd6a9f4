package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 0.0.0.0
  port: 9090
  shutdown_timeout: 3s
database:
  path: /tmp/tasker-test.db
log:
  level: debug
  format: console
timezone: UTC
watch:
  poll_interval: 30s
cli:
  user: u-123
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/tmp/tasker-test.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 30*time.Second, cfg.Watch.PollInterval)
	assert.Equal(t, "u-123", cfg.CLI.User)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("TASKER_SERVER_PORT", "7070")
	t.Setenv("TASKER_WATCH_POLL_INTERVAL", "2m")
	t.Setenv("TASKER_CLI_USER", "from-env")
	t.Setenv("TASKER_TIMEZONE", "UTC")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Watch.PollInterval)
	assert.Equal(t, "from-env", cfg.CLI.User)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "tasker.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, time.Minute, cfg.Watch.PollInterval)
	assert.NotEmpty(t, cfg.Watch.CachePath)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad port", "server:\n  port: 70000\n", "invalid server port"},
		{"bad level", "log:\n  level: loud\n", "invalid log level"},
		{"bad format", "log:\n  format: xml\n", "invalid log format"},
		{"bad timezone", "timezone: Mars/Olympus\n", "invalid timezone"},
		{"fast poll", "watch:\n  poll_interval: 10ms\n", "below one second"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", envKey("TASKER_SERVER_PORT"))
	assert.Equal(t, "server.shutdown_timeout", envKey("TASKER_SERVER_SHUTDOWN_TIMEOUT"))
	assert.Equal(t, "timezone", envKey("TASKER_TIMEZONE"))
}
