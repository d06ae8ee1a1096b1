package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv_Variables(t *testing.T) {
	t.Setenv(EnvSecretKey, "env-secret")
	t.Setenv(EnvStoreDriver, "memory")
	t.Setenv(EnvGRPCAddress, ":6000")
	t.Setenv(EnvHTTPAddress, "")
	t.Setenv(EnvTokenTTL, "15m")
	t.Setenv(EnvPoolMinConns, "0")
	t.Setenv(EnvPoolMaxConns, "3")
	t.Setenv(EnvPoolAcquireTimeout, "2s")
	t.Setenv(EnvPasswordHashing, "bcrypt")
	t.Setenv(EnvLogBackend, "zap")
	t.Setenv(EnvLogLevel, "warn")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg, ""))

	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, ":6000", cfg.EndpointAddrGRPC)
	assert.Equal(t, "", cfg.EndpointAddrHTTP, "an explicitly empty variable disables HTTP")
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 0, cfg.PoolMinConns)
	assert.Equal(t, 3, cfg.PoolMaxConns)
	assert.Equal(t, 2*time.Second, cfg.PoolAcquireTimeout)
	assert.Equal(t, "bcrypt", cfg.PasswordHashing)
	assert.Equal(t, "zap", cfg.LogBackend)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func Test_parseEnv_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_DSN=postgres://dotenv\nJWT_SECRET=dotenv-secret\n"), 0o600))

	// already-set variables win over the file
	t.Setenv(EnvSecretKey, "process-secret")
	// registered for cleanup so the value loaded from the file does not leak
	t.Setenv(EnvDatabaseDSN, "")
	require.NoError(t, os.Unsetenv(EnvDatabaseDSN))

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg, path))

	assert.Equal(t, "postgres://dotenv", cfg.DatabaseDSN)
	assert.Equal(t, "process-secret", cfg.SecretKey)
}

func Test_parseEnv_MissingDotenvIsFine(t *testing.T) {
	cfg := &Config{SecretKey: "keep"}
	require.NoError(t, parseEnv(cfg, filepath.Join(t.TempDir(), ".env")))
	assert.Equal(t, "keep", cfg.SecretKey)
}

func Test_parseEnv_BadValues(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		t.Setenv(EnvPoolMaxConns, "many")
		require.ErrorContains(t, parseEnv(&Config{}, ""), EnvPoolMaxConns)
	})
	t.Run("duration", func(t *testing.T) {
		t.Setenv(EnvTokenTTL, "forever")
		require.ErrorContains(t, parseEnv(&Config{}, ""), EnvTokenTTL)
	})
}
