package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `logger:
  level: debug
http_client:
  timeout: 10s
  proxy:
    host: proxy.local
    port: 3128
github:
  user_agent: custom-agent
  owner: acme
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 10*time.Second, cfg.HTTPClient.Timeout)
	assert.Equal(t, "http://proxy.local", cfg.HTTPClient.Proxy.Host)
	assert.Equal(t, "custom-agent", cfg.GitHub.UserAgent)
	assert.Equal(t, "acme", cfg.GitHub.Owner)
	assert.Equal(t, DefaultRepository, cfg.GitHub.Repository)
	assert.Equal(t, DefaultBaseURL, cfg.GitHub.BaseURL)
	assert.Equal(t, DefaultTokenEnv, cfg.GitHub.TokenEnv)
}

func TestLoadConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yml")

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, cfg.GitHub.UserAgent)

	_, err = LoadConfig(path, false)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "negative timeout",
			mutate:  func(cfg *Config) { cfg.HTTPClient.Timeout = -time.Second },
			wantErr: "cannot be negative",
		},
		{
			name:    "timeout too long",
			mutate:  func(cfg *Config) { cfg.HTTPClient.Timeout = time.Hour },
			wantErr: "exceeds maximum",
		},
		{
			name: "proxy port out of range",
			mutate: func(cfg *Config) {
				cfg.HTTPClient.Proxy = Proxy{Host: "proxy.local", Port: 70000}
			},
			wantErr: "port must be between",
		},
		{
			name:    "base url without scheme",
			mutate:  func(cfg *Config) { cfg.GitHub.BaseURL = "api.github.com" },
			wantErr: "must use http or https",
		},
		{
			name:    "empty user agent",
			mutate:  func(cfg *Config) { cfg.GitHub.UserAgent = " " },
			wantErr: "user_agent must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetBoolValue(t *testing.T) {
	enabled := true
	cfg := &Config{Logger: Logger{JSONFormat: &enabled}}

	assert.True(t, GetBoolValue(cfg, "Logger.JSONFormat", false))
	assert.True(t, GetBoolValue(cfg, "Logger.DisableTime", true))
	assert.False(t, GetBoolValue(cfg, "Logger.Missing", false))

	var nilCfg *Config
	assert.True(t, GetBoolValue(nilCfg, "Logger.DisableTime", true))
}

func TestLoadToken(t *testing.T) {
	cfg := &Config{GitHub: GitHub{TokenEnv: "CODEQL_CLIENT_TEST_TOKEN"}}

	t.Setenv("CODEQL_CLIENT_TEST_TOKEN", "")
	_, err := LoadToken(cfg)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, "dummy", TokenOrDefault(cfg, "dummy"))

	t.Setenv("CODEQL_CLIENT_TEST_TOKEN", "secret")
	token, err := LoadToken(cfg)
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
}
