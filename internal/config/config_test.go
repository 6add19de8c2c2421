package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout.Duration())
	assert.Equal(t, "Mediation Practice", cfg.Practice.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
api:
  base_url: https://crm.example.com
  token: secret-token
  timeout: 10s
practice:
  name: Riverside Mediation
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, "https://crm.example.com", cfg.API.BaseURL)
	assert.Equal(t, "secret-token", cfg.API.Token.Value())
	assert.Equal(t, 10*time.Second, cfg.API.Timeout.Duration())
	assert.Equal(t, "Riverside Mediation", cfg.Practice.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("CASEBOOK_API_BASE_URL", "https://env.example.com")
	t.Setenv("CASEBOOK_API_TOKEN", "env-token")
	t.Setenv("CASEBOOK_PRACTICE_USER_NAME", "Jess")

	cfg, err := Load(writeConfig(t, `
api:
  base_url: https://file.example.com
  token: file-token
`))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, "env-token", cfg.API.Token.Value())
	assert.Equal(t, "Jess", cfg.Practice.UserName)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.API.BaseURL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "api: [not: valid"))
	require.Error(t, err)
}

func TestLoad_RejectsOversizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	big := make([]byte, maxConfigFileSize+1)
	require.NoError(t, os.WriteFile(path, big, 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad url", func(c *Config) { c.API.BaseURL = "not a url" }, "not a valid URL"},
		{"missing scheme", func(c *Config) { c.API.BaseURL = "localhost:8000" }, "not a valid URL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "pretty" }, "console or json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{}
			applyDefaults(&cfg)
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSecret_Redaction(t *testing.T) {
	s := Secret("super-secret")
	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.Equal(t, "super-secret", s.Value())

	buf, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `"[REDACTED]"`, string(buf))

	assert.Equal(t, "", Secret("").String())
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("90s")))
	assert.Equal(t, 90*time.Second, d.Duration())

	assert.Error(t, d.UnmarshalText([]byte("-5s")))
	assert.Error(t, d.UnmarshalText([]byte("soon")))
}

func TestState_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	exportedAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	state := &State{LastExportAt: exportedAt}
	require.NoError(t, state.Save(path))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.True(t, loaded.LastExportAt.Equal(exportedAt))
}

func TestLoadState_MissingFile(t *testing.T) {
	state, err := LoadState(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	assert.True(t, state.LastExportAt.IsZero())
}

func TestDaysSinceExport(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	state := &State{LastExportAt: now.AddDate(0, 0, -8)}
	days, ok := state.DaysSinceExport(now)
	require.True(t, ok)
	assert.Equal(t, 8, days)

	_, ok = (&State{}).DaysSinceExport(now)
	assert.False(t, ok)
}
