package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
log_level = "trace"
log_to_stdout = true
api_base_url = "http://localhost:8080"
request_timeout_sec = 5
poll_interval_sec = 10
prefs_db_path = "neonpanda-prefs.db"

[production]
log_level = "info"
logs_path = "/var/log/neonpanda"
api_base_url = "https://api.neonpanda.com"
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestConfig(t)

	cfg, err := Load("development", path)
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 10*time.Second, cfg.PollInterval())

	cfg, err = Load("prod", path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.neonpanda.com", cfg.APIBaseURL)
	// defaults kick in when not set
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 2*time.Minute, cfg.PollInterval())
}

func TestLoad_UnknownEnv(t *testing.T) {
	path := writeTestConfig(t)
	_, err := Load("staging", path)
	require.ErrorContains(t, err, "unknown env")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("development", "no-such-config.toml")
	require.Error(t, err)
}
