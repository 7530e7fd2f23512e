package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Validate(t *testing.T) {
	base := func() *Settings {
		cfg := NewDefault()
		cfg.Host = "192.168.1.10"
		cfg.User = "root@pam"
		cfg.Password = "secret"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{
			name:   "valid with password",
			mutate: func(s *Settings) {},
		},
		{
			name: "valid with token",
			mutate: func(s *Settings) {
				s.Password = ""
				s.TokenName = "mcp"
				s.TokenValue = "uuid-value"
			},
		},
		{
			name:    "missing host",
			mutate:  func(s *Settings) { s.Host = "" },
			wantErr: "host is required",
		},
		{
			name:    "missing user",
			mutate:  func(s *Settings) { s.User = "" },
			wantErr: "user is required",
		},
		{
			name: "no credentials",
			mutate: func(s *Settings) {
				s.Password = ""
			},
			wantErr: "either password or API token",
		},
		{
			name: "token name without value",
			mutate: func(s *Settings) {
				s.Password = ""
				s.TokenName = "mcp"
			},
			wantErr: "both tokenName and tokenValue",
		},
		{
			name: "password and token together",
			mutate: func(s *Settings) {
				s.TokenName = "mcp"
				s.TokenValue = "uuid-value"
			},
			wantErr: "not both",
		},
		{
			name:    "port out of range",
			mutate:  func(s *Settings) { s.Port = 70000 },
			wantErr: "port 70000 is out of range",
		},
		{
			name:    "unknown transport",
			mutate:  func(s *Settings) { s.Transport = "grpc" },
			wantErr: `unknown transport "grpc"`,
		},
		{
			name: "http transport needs valid port",
			mutate: func(s *Settings) {
				s.Transport = TransportHTTP
				s.HTTPPort = 0
			},
			wantErr: "httpPort 0 is out of range",
		},
		{
			name:    "negative task timeout",
			mutate:  func(s *Settings) { s.TaskTimeout = -1 },
			wantErr: "taskTimeout -1 cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMergeSettings(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		source := &Settings{
			Host: "pve.example.com",
			Port: 8007,
		}

		MergeSettings(target, source, SourceLocal)

		assert.Equal(t, "pve.example.com", target.Host)
		assert.Equal(t, 8007, target.Port)
		assert.Equal(t, SourceLocal, target.Sources["host"])
		assert.Equal(t, SourceLocal, target.Sources["port"])
	})

	t.Run("does not overwrite with zero values", func(t *testing.T) {
		target := NewDefault()
		MergeSettings(target, &Settings{Port: 0}, SourceLocal)
		assert.Equal(t, DefaultPort, target.Port)
	})

	t.Run("merges explicit false with SetFields", func(t *testing.T) {
		target := NewDefault()
		target.Insecure = true

		source := &Settings{
			Insecure:  false,
			SetFields: map[string]bool{"insecure": true},
		}

		MergeSettings(target, source, SourceLocal)
		assert.False(t, target.Insecure)
	})

	t.Run("does not merge false without SetFields", func(t *testing.T) {
		target := NewDefault()
		target.Lazy = true

		MergeSettings(target, &Settings{Lazy: false}, SourceLocal)
		assert.True(t, target.Lazy)
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()
		MergeSettings(target, nil, SourceLocal)
		assert.Equal(t, DefaultPort, target.Port)
	})
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `host: 10.0.0.5
user: api@pve
tokenName: mcp
tokenValue: abc-123
insecure: false
lazy: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadSettingsFile(path)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, "api@pve", cfg.User)
	assert.Equal(t, "mcp", cfg.TokenName)
	assert.Equal(t, "abc-123", cfg.TokenValue)
	assert.True(t, cfg.Lazy)

	// Explicitly present keys are recorded even when false.
	assert.True(t, cfg.SetFields["insecure"])
	assert.True(t, cfg.SetFields["lazy"])
	assert.False(t, cfg.SetFields["password"])
}

func TestLoadSettingsFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unclosed"), 0o600))

	_, err := LoadSettingsFile(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, path, cfgErr.Path)
}

func TestLoadEnvSettings(t *testing.T) {
	t.Setenv(EnvHost, "env-host")
	t.Setenv(EnvPort, "8443")
	t.Setenv(EnvUser, "root@pam")
	t.Setenv(EnvInsecure, "true")
	t.Setenv(EnvLazy, "1")
	t.Setenv(EnvTransport, "http")

	cfg := NewDefault()
	LoadEnvSettings(cfg)

	assert.Equal(t, "env-host", cfg.Host)
	assert.Equal(t, 8443, cfg.Port)
	assert.Equal(t, "root@pam", cfg.User)
	assert.True(t, cfg.Insecure)
	assert.True(t, cfg.Lazy)
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, SourceEnv, cfg.Sources["host"])
}

func TestLoadEnvSettings_IgnoresBadInts(t *testing.T) {
	t.Setenv(EnvPort, "not-a-number")

	cfg := NewDefault()
	LoadEnvSettings(cfg)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, SourceDefault, cfg.Sources["port"])
}

func TestLoadAll_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: from-file\nuser: root@pam\n"), 0o600))

	cfg, err := LoadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Host)
	assert.Equal(t, SourceLocal, cfg.Sources["host"])
}

func TestLoadAll_ExplicitPathMissing(t *testing.T) {
	_, err := LoadAll(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadAll_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: from-file\nuser: root@pam\n"), 0o600))
	t.Setenv(EnvHost, "from-env")

	cfg, err := LoadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Host)
	assert.Equal(t, SourceEnv, cfg.Sources["host"])
}
