package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockigd/pkg/logging"
)

func TestDefaultServerConfiguration(t *testing.T) {
	cfg := DefaultServerConfiguration()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 0, cfg.HTTPPort)
	assert.False(t, cfg.SSDPEnabled)
	assert.Equal(t, 401, cfg.DefaultFaultCode)
	assert.Equal(t, "Invalid Action", cfg.DefaultFaultDescription)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MOCKIGD_HTTP_PORT", "5123")
	t.Setenv("MOCKIGD_SSDP_ENABLED", "true")
	t.Setenv("MOCKIGD_DEFAULT_FAULT_CODE", "602")
	t.Setenv("MOCKIGD_READ_TIMEOUT", "5s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 5123, cfg.HTTPPort)
	assert.True(t, cfg.SSDPEnabled)
	assert.Equal(t, 602, cfg.DefaultFaultCode)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	// Unset variables keep defaults.
	assert.Equal(t, "Invalid Action", cfg.DefaultFaultDescription)
	assert.Equal(t, DefaultSSDPPort, cfg.SSDPPort)
}

func TestApplyEnv_BadValue(t *testing.T) {
	t.Setenv("MOCKIGD_HTTP_PORT", "not-a-port")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "gateway.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("httpPort: 5000\nfriendlyName: Lab Router\n"), 0o600))

	cfg := DefaultServerConfiguration()
	require.NoError(t, LoadFile(cfg, yamlPath))
	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Equal(t, "Lab Router", cfg.FriendlyName)
	assert.Equal(t, DefaultManufacturer, cfg.Manufacturer, "missing keys keep defaults")

	jsonPath := filepath.Join(dir, "gateway.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"defaultFaultCode": 501}`), 0o600))

	cfg = DefaultServerConfiguration()
	require.NoError(t, LoadFile(cfg, jsonPath))
	assert.Equal(t, 501, cfg.DefaultFaultCode)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	badJSON := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte(`{"httpPort":`), 0o600))
	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("httpPort: [1, 2\n"), 0o600))

	tests := []struct {
		path string
		want error
	}{
		{filepath.Join(dir, "missing.yaml"), ErrFileNotFound},
		{empty, ErrEmptyFile},
		{badJSON, ErrInvalidJSON},
		{badYAML, ErrInvalidYAML},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			err := LoadFile(DefaultServerConfiguration(), tt.path)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte("httpPort: 5000\n"), 0o600))
	t.Setenv("MOCKIGD_HTTP_PORT", "6000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.HTTPPort)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfiguration)
		field  string
	}{
		{"empty host", func(c *ServerConfiguration) { c.Host = "" }, "host"},
		{"port too large", func(c *ServerConfiguration) { c.HTTPPort = 70000 }, "httpPort"},
		{"negative ssdp port", func(c *ServerConfiguration) { c.SSDPPort = -1 }, "ssdpPort"},
		{"zero fault code", func(c *ServerConfiguration) { c.DefaultFaultCode = 0 }, "defaultFaultCode"},
		{"negative log cap", func(c *ServerConfiguration) { c.MaxLogEntries = -1 }, "maxLogEntries"},
		{"zero body size", func(c *ServerConfiguration) { c.MaxBodySize = 0 }, "maxBodySize"},
		{"negative timeout", func(c *ServerConfiguration) { c.ReadTimeout = -time.Second }, "timeouts"},
		{"bad log level", func(c *ServerConfiguration) { c.LogLevel = "trace" }, "logLevel"},
		{"bad log format", func(c *ServerConfiguration) { c.LogFormat = "xml" }, "logFormat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfiguration()
			tt.mutate(cfg)

			err := cfg.Validate()
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	cfg := DefaultServerConfiguration()
	cfg.DefaultFaultCode = 9999
	assert.NoError(t, cfg.Validate(), "non-standard fault codes are allowed")
}

func TestLogging(t *testing.T) {
	cfg := DefaultServerConfiguration()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"

	lc := cfg.Logging()
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.Equal(t, logging.FormatJSON, lc.Format)
}
