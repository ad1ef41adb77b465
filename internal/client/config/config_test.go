package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(&Config{ServerEndpointAddr: "127.0.0.1:50051", Timeout: 10 * time.Second}, cfg))
}

func TestLoadConfig_Layers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_endpoint_addr": "file:1", "timeout_seconds": 3}`), 0o600))

	tests := []struct {
		name     string
		args     []string
		environ  []string
		expected *Config
	}{
		{
			name:     "environment",
			environ:  []string{"USERSVC_SERVER_ADDR=env:1", "USERSVC_TOKEN=tok", "USERSVC_TIMEOUT=5s"},
			expected: &Config{ServerEndpointAddr: "env:1", Token: "tok", Timeout: 5 * time.Second},
		},
		{
			name:     "file beats environment",
			args:     []string{"-c", path},
			environ:  []string{"USERSVC_SERVER_ADDR=env:1", "USERSVC_TOKEN=tok"},
			expected: &Config{ServerEndpointAddr: "file:1", Token: "tok", Timeout: 3 * time.Second},
		},
		{
			name:     "flags beat everything",
			args:     []string{"-c", path, "-a", "flag:1", "-t", "flagtok", "-w", "7", "login", "alice"},
			environ:  []string{"USERSVC_TOKEN=tok"},
			expected: &Config{ServerEndpointAddr: "flag:1", Token: "flagtok", Timeout: 7 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.args, tt.environ)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"online_check_interval": "3s"}`), 0o600))

	_, err := LoadConfig([]string{"-c", bad}, nil)
	assert.ErrorContains(t, err, "config: file")

	_, err = LoadConfig([]string{"-w", "0"}, nil)
	assert.ErrorContains(t, err, "timeout")

	_, err = LoadConfig(nil, []string{"USERSVC_TIMEOUT=soon"})
	assert.ErrorContains(t, err, "environment")
}
