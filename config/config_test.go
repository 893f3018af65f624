package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"default_service": "prod",
		"default_site": "main",
		"services": {
			"prod": {"baseurl": "https://moodle.example.org", "token": "abc", "timeout": "45s"},
			"test": {"baseurl": "https://test.example.org", "token": "def", "verify": false}
		},
		"sites": {
			"main": {"baseurl": "https://moodle.example.org", "token": "ghi"}
		},
		"logging": {"level": "debug", "format": "json"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Service)
	assert.Equal(t, "main", cfg.Site)
	assert.Equal(t, []string{"prod", "test"}, cfg.ServiceNames())

	prod := cfg.Services["prod"]
	assert.Equal(t, "https://moodle.example.org", prod.BaseURL)
	assert.Equal(t, "abc", prod.Token)
	assert.Equal(t, 45*time.Second, prod.Timeout)
	assert.True(t, prod.VerifyTLS())
	assert.False(t, cfg.Services["test"].VerifyTLS())

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	// untouched logging fields keep their defaults
	assert.True(t, cfg.Logging.Color)
	assert.Equal(t, 10, cfg.Logging.MaxSize)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `{
		"default_service": "prod",
		"services": {
			"prod": {"baseurl": "https://moodle.example.org", "token": "abc"},
			"test": {"baseurl": "https://test.example.org", "token": "def"}
		}
	}`)
	t.Setenv("MUDDLE_DEFAULT_SERVICE", "test")
	t.Setenv("MUDDLE_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Service)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "not json",
			content: `default_service = "prod"`,
			errMsg:  "error reading config",
		},
		{
			name:    "service without token",
			content: `{"services": {"prod": {"baseurl": "https://moodle.example.org"}}}`,
			errMsg:  "services.prod.token is required",
		},
		{
			name:    "site without url",
			content: `{"sites": {"main": {"token": "abc"}}}`,
			errMsg:  "sites.main.baseurl is required",
		},
		{
			name:    "bad logging level",
			content: `{"logging": {"level": "verbose"}}`,
			errMsg:  "invalid logging level: verbose",
		},
		{
			name:    "bad logging format",
			content: `{"logging": {"format": "xml"}}`,
			errMsg:  "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config file not found")
	})
}

func TestGetService(t *testing.T) {
	cfg := &Config{
		Service: "prod",
		Services: map[string]ServiceConfig{
			"prod": {BaseURL: "https://moodle.example.org", Token: "abc"},
			"test": {BaseURL: "https://test.example.org", Token: "def"},
		},
	}

	tests := []struct {
		name    string
		cfg     *Config
		service string
		wantURL string
		errMsg  string
	}{
		{name: "default", cfg: cfg, wantURL: "https://moodle.example.org"},
		{name: "named", cfg: cfg, service: "test", wantURL: "https://test.example.org"},
		{name: "case insensitive", cfg: cfg, service: "TEST", wantURL: "https://test.example.org"},
		{name: "unknown", cfg: cfg, service: "staging", errMsg: `no config available for service "staging"`},
		{name: "no default", cfg: &Config{}, errMsg: "no service specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := tt.cfg.GetService(tt.service)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, svc.BaseURL)
		})
	}
}

func TestGetSite(t *testing.T) {
	cfg := &Config{
		Sites: map[string]ServiceConfig{
			"main": {BaseURL: "https://moodle.example.org", Token: "abc"},
		},
	}

	_, err := cfg.GetSite("")
	assert.True(t, errors.Is(err, ErrNoSite))

	site, err := cfg.GetSite("main")
	require.NoError(t, err)
	assert.Equal(t, "abc", site.Token)

	_, err = cfg.GetSite("other")
	assert.EqualError(t, err, `no config available for site "other"`)
}
