package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names read by parseEnv.
const (
	EnvSecretKey          = "JWT_SECRET"
	EnvDatabaseDSN        = "DATABASE_DSN"
	EnvStoreDriver        = "STORE_DRIVER"
	EnvGRPCAddress        = "GRPC_ADDRESS"
	EnvHTTPAddress        = "HTTP_ADDRESS"
	EnvTokenTTL           = "TOKEN_TTL"
	EnvPoolMinConns       = "POOL_MIN_CONNS"
	EnvPoolMaxConns       = "POOL_MAX_CONNS"
	EnvPoolAcquireTimeout = "POOL_ACQUIRE_TIMEOUT"
	EnvPasswordHashing    = "PASSWORD_HASHING"
	EnvLogBackend         = "LOG_BACKEND"
	EnvLogLevel           = "LOG_LEVEL"
)

// parseEnv loads dotenvPath (if it exists) into the process environment
// without overriding variables that are already set, then overlays every
// variable that is present.
func parseEnv(config *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	lookupString(EnvSecretKey, &config.SecretKey)
	lookupString(EnvDatabaseDSN, &config.DatabaseDSN)
	lookupString(EnvStoreDriver, &config.StoreDriver)
	lookupString(EnvGRPCAddress, &config.EndpointAddrGRPC)
	lookupString(EnvHTTPAddress, &config.EndpointAddrHTTP)
	lookupString(EnvPasswordHashing, &config.PasswordHashing)
	lookupString(EnvLogBackend, &config.LogBackend)
	lookupString(EnvLogLevel, &config.LogLevel)

	if err := lookupInt(EnvPoolMinConns, &config.PoolMinConns); err != nil {
		return err
	}
	if err := lookupInt(EnvPoolMaxConns, &config.PoolMaxConns); err != nil {
		return err
	}
	if err := lookupDuration(EnvTokenTTL, &config.AccessTokenValidityDuration); err != nil {
		return err
	}
	return lookupDuration(EnvPoolAcquireTimeout, &config.PoolAcquireTimeout)
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func lookupInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func lookupDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
