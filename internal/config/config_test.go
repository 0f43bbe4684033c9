package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Point the loader at a nonexistent config file so only envconfig
	// defaults apply.
	t.Setenv("AMES_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, 15, cfg.Build.MaxRankedAlerts)
	assert.True(t, cfg.Build.WriteWorkbook)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
logging:
  level: warn
  output: file
  file_path: logs/custom.log
build:
  max_ranked_alerts: 5
`
	require.NoError(t, os.WriteFile(configFile, []byte(yaml), 0644))

	t.Setenv("AMES_CONFIG_FILE", configFile)
	t.Setenv("AMES_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	// Env wins over file
	assert.Equal(t, "debug", cfg.Logging.Level)
	// File wins over defaults
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "file", cfg.Logging.Output)
	assert.Equal(t, "logs/custom.log", cfg.Logging.FilePath)
	assert.Equal(t, 5, cfg.Build.MaxRankedAlerts)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "port out of range",
			env:  map[string]string{"AMES_SERVER_PORT": "99999"},
		},
		{
			name: "unknown log level",
			env:  map[string]string{"AMES_LOGGING_LEVEL": "verbose"},
		},
		{
			name: "unknown log output",
			env:  map[string]string{"AMES_LOGGING_OUTPUT": "syslog"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AMES_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_ForcesJSONFormat(t *testing.T) {
	t.Setenv("AMES_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("AMES_LOGGING_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Logging.Format)
}
