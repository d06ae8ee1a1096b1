package server

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.StoreDriver = config.DriverSQLite
	c.DatabaseDSN = "file:" + filepath.Join(t.TempDir(), "app.db")
	c.EndpointAddrGRPC = freeAddr(t)
	c.EndpointAddrHTTP = freeAddr(t)
	return c
}

func TestNewApp_WarnsOnInsecureDefaults(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := testConfig(t)

	app, err := NewApp(context.Background(), c, logging.NewZapLogger(zap.New(core)))
	require.NoError(t, err)
	defer app.store.Close(context.Background())

	assert.Equal(t, 2, logs.Len())
}

func TestNewApp_NoWarningsWhenConfigured(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := testConfig(t)
	c.SecretKey = "a-real-secret"
	c.PasswordHashing = "bcrypt"

	app, err := NewApp(context.Background(), c, logging.NewZapLogger(zap.New(core)))
	require.NoError(t, err)
	defer app.store.Close(context.Background())

	assert.Zero(t, logs.Len())
}

func TestNewApp_StartupFailures(t *testing.T) {
	t.Run("unknown hashing", func(t *testing.T) {
		c := testConfig(t)
		c.PasswordHashing = "rot13"
		_, err := NewApp(context.Background(), c, logging.NopLogger{})
		require.Error(t, err)
	})

	t.Run("schema init fails", func(t *testing.T) {
		c := testConfig(t)
		c.DatabaseDSN = "file:" + filepath.Join(t.TempDir(), "missing-dir", "app.db")
		_, err := NewApp(context.Background(), c, logging.NopLogger{})
		require.Error(t, err)
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	c := testConfig(t)
	app, err := NewApp(context.Background(), c, logging.NopLogger{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", c.EndpointAddrHTTP)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestRun_AddressInUse(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	c := testConfig(t)
	c.EndpointAddrGRPC = lis.Addr().String()
	c.EndpointAddrHTTP = ""
	app, err := NewApp(context.Background(), c, logging.NopLogger{})
	require.NoError(t, err)

	require.Error(t, app.Run(context.Background()))
}
