package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON_LoadsAllFields(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_grpc":             "www.example:9000",
		"endpoint_addr_http":             ":8080",
		"store_driver":                   "mongo",
		"database_dsn":                   "mongodb://localhost:27017/auth",
		"pool_min_conns":                 1,
		"pool_max_conns":                 4,
		"pool_acquire_timeout":           "250ms",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "30m",
		"password_hashing":               "bcrypt",
		"log_backend":                    "zap",
		"log_level":                      "debug",
	})

	cfg := &Config{}
	require.NoError(t, parseJSON(cfg, []string{"-config", path}))

	assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017/auth", cfg.DatabaseDSN)
	assert.Equal(t, 1, cfg.PoolMinConns)
	assert.Equal(t, 4, cfg.PoolMaxConns)
	assert.Equal(t, 250*time.Millisecond, cfg.PoolAcquireTimeout)
	assert.Equal(t, "my_secret_key", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, "bcrypt", cfg.PasswordHashing)
	assert.Equal(t, "zap", cfg.LogBackend)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func Test_parseJSON_PartialFileKeepsOtherValues(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"access_token_validity_duration": int64(2 * time.Hour),
	})

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseJSON(cfg, []string{"-c", path}))

	assert.Equal(t, 2*time.Hour, cfg.AccessTokenValidityDuration)
	assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
	assert.Equal(t, DefaultSecretKey, cfg.SecretKey)
}

func Test_parseJSON_NoFlagIsNoop(t *testing.T) {
	cfg := &Config{SecretKey: "keep"}
	require.NoError(t, parseJSON(cfg, []string{"-a", ":1"}))
	assert.Equal(t, "keep", cfg.SecretKey)
}

func Test_parseJSON_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		err := parseJSON(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		require.Error(t, parseJSON(&Config{}, []string{"-c", path}))
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"pool_acquire_timeout": "soon"})
		require.Error(t, parseJSON(&Config{}, []string{"-c", path}))
	})
}
