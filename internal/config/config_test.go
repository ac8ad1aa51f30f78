package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty file uses defaults",
			yaml: ``,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 5<<20, cfg.Extraction.MaxDocumentBytes)
				assert.InDelta(t, 20.0, cfg.RateLimit.PerSecond, 0.001)
				assert.Equal(t, 40, cfg.RateLimit.Burst)
				assert.True(t, cfg.RateLimit.Enabled())
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Format)
			},
		},
		{
			name: "explicit values",
			yaml: `
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 5s
  write_timeout: 10s
extraction:
  max_document_bytes: 1024
rate_limit:
  per_second: 2.5
  burst: 5
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 1024, cfg.Extraction.MaxDocumentBytes)
				assert.InDelta(t, 2.5, cfg.RateLimit.PerSecond, 0.001)
				assert.Equal(t, 5, cfg.RateLimit.Burst)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name: "rate limit disabled",
			yaml: `
rate_limit:
  per_second: -1
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.False(t, cfg.RateLimit.Enabled())
			},
		},
		{
			name: "env var substitution",
			yaml: `
server:
  port: ${TEST_PEX_PORT}
logging:
  level: "${TEST_PEX_LEVEL}"
`,
			envVars: map[string]string{
				"TEST_PEX_PORT":  "7070",
				"TEST_PEX_LEVEL": "warn",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, "warn", cfg.Logging.Level)
			},
		},
		{
			name: "port out of range",
			yaml: `
server:
  port: 70000
`,
			wantErr: "server.port must be between 1 and 65535",
		},
		{
			name: "negative document limit",
			yaml: `
extraction:
  max_document_bytes: -5
`,
			wantErr: "extraction.max_document_bytes must be positive",
		},
		{
			name: "negative burst",
			yaml: `
rate_limit:
  burst: -1
`,
			wantErr: "rate_limit.burst must be at least 1",
		},
		{
			name: "unknown log format",
			yaml: `
logging:
  format: logfmt
`,
			wantErr: "logging.format",
		},
		{
			name: "errors are joined",
			yaml: `
server:
  port: -1
logging:
  format: xml
`,
			wantErr: "server.port must be between 1 and 65535 (got -1)\nlogging.format",
		},
		{
			name:    "invalid yaml",
			yaml:    "server: [",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, validate(cfg))
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ServerConfig
		want string
	}{
		{name: "ipv4", cfg: ServerConfig{Host: "0.0.0.0", Port: 8080}, want: "0.0.0.0:8080"},
		{name: "ipv6", cfg: ServerConfig{Host: "::1", Port: 80}, want: "[::1]:80"},
		{name: "empty host", cfg: ServerConfig{Port: 9000}, want: ":9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.Addr())
		})
	}
}
