package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-w", ":8081", "-k", "sqlite", "-d", "file:x.db",
				"-m", "1", "-x", "5", "-q", "3s", "-s", "secret", "-t", "90m",
				"-p", "bcrypt", "-b", "zap", "-l", "debug",
			},
			expected: &Config{
				EndpointAddrGRPC:            "127.0.0.1:9090",
				EndpointAddrHTTP:            ":8081",
				StoreDriver:                 "sqlite",
				DatabaseDSN:                 "file:x.db",
				PoolMinConns:                1,
				PoolMaxConns:                5,
				PoolAcquireTimeout:          3 * time.Second,
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 90 * time.Minute,
				PasswordHashing:             "bcrypt",
				LogBackend:                  "zap",
				LogLevel:                    "debug",
			},
		},
		{
			name:     "unrelated args ignored",
			args:     []string{"-c", "cfg.json", "-s", "only-secret", "--verbose"},
			expected: &Config{SecretKey: "only-secret"},
		},
		{
			name:    "bad duration",
			args:    []string{"-t", "sometime"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
