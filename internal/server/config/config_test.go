package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, ":4000", c.EndpointAddrHTTP)
	assert.Equal(t, DriverPostgres, c.StoreDriver)
	assert.Equal(t, 2, c.PoolMinConns)
	assert.Equal(t, 10, c.PoolMaxConns)
	assert.Equal(t, 5*time.Second, c.PoolAcquireTimeout)
	assert.Equal(t, DefaultSecretKey, c.SecretKey)
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, "plain", c.PasswordHashing)
	assert.Equal(t, "slog", c.LogBackend)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_DefaultsWithoutArgs(t *testing.T) {
	c, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_grpc": ":7000",
		"secret_key":         "from-json",
		"store_driver":       "sqlite",
		"database_dsn":       "file:json.db",
	})
	t.Setenv(EnvSecretKey, "from-env")
	t.Setenv(EnvDatabaseDSN, "file:env.db")

	c, err := LoadConfig([]string{"-c", path, "-d", "file:flag.db"})
	require.NoError(t, err)

	assert.Equal(t, ":7000", c.EndpointAddrGRPC, "json overrides defaults")
	assert.Equal(t, "from-env", c.SecretKey, "env overrides json")
	assert.Equal(t, "file:flag.db", c.DatabaseDSN, "flags override env")
	assert.Equal(t, DriverSQLite, c.StoreDriver)
}

func TestLoadConfig_InvalidResultIsRejected(t *testing.T) {
	_, err := LoadConfig([]string{"-k", "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "empty secret", mutate: func(c *Config) { c.SecretKey = "" }, wantErr: "SecretKey"},
		{name: "zero validity", mutate: func(c *Config) { c.AccessTokenValidityDuration = 0 }, wantErr: "AccessTokenValidityDuration"},
		{name: "negative validity", mutate: func(c *Config) { c.AccessTokenValidityDuration = -time.Second }, wantErr: "AccessTokenValidityDuration"},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "oracle" }, wantErr: "StoreDriver"},
		{name: "min above max", mutate: func(c *Config) { c.PoolMinConns, c.PoolMaxConns = 5, 2 }, wantErr: "PoolMaxConns"},
		{name: "zero max", mutate: func(c *Config) { c.PoolMinConns, c.PoolMaxConns = 0, 0 }, wantErr: "PoolMaxConns"},
		{name: "missing dsn", mutate: func(c *Config) { c.DatabaseDSN = "" }, wantErr: "DatabaseDSN"},
		{name: "memory needs no dsn", mutate: func(c *Config) { c.StoreDriver, c.DatabaseDSN = DriverMemory, "" }},
		{name: "unknown hashing", mutate: func(c *Config) { c.PasswordHashing = "md5" }, wantErr: "PasswordHashing"},
		{name: "unknown log backend", mutate: func(c *Config) { c.LogBackend = "logrus" }, wantErr: "LogBackend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
