package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: mergington-activities
registry:
  enforce_capacity: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "mergington-activities", cfg.App.Name)
	assert.Equal(t, ":8000", cfg.Server.Address)
	assert.Equal(t, 10000, cfg.Server.ReadTimeout)
	assert.Equal(t, 5000, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Registry.EnforceCapacity)
	assert.False(t, cfg.Notifications.SNS.Enabled)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":9000"
  static_dir: ${STATIC_ROOT}
`)
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:8081")
	t.Setenv("STATIC_ROOT", "/srv/static")
	t.Setenv("LOGGING_LEVEL", "debug")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.Server.Address)
	assert.Equal(t, "/srv/static", cfg.Server.StaticDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "sns without topic",
			body: `
notifications:
  sns:
    enabled: true
    region: eu-west-1
`,
			wantErr: "topic_arn",
		},
		{
			name: "sns without region",
			body: `
notifications:
  sns:
    enabled: true
    topic_arn: arn:aws:sns:eu-west-1:123456789012:roster
`,
			wantErr: "region",
		},
		{
			name: "negative timeout",
			body: `
server:
  write_timeout: -1
`,
			wantErr: "negative",
		},
		{
			name: "unknown log format",
			body: `
logging:
  format: xml
`,
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, "1.5s", GetDuration(1500).String())
}
