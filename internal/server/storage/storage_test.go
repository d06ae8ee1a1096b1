package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T, maxConns int) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreDriver = config.DriverSQLite
	cfg.DatabaseDSN = "file:" + filepath.Join(t.TempDir(), "auth.db") + "?_pragma=busy_timeout(5000)"
	cfg.PoolMinConns = 1
	cfg.PoolMaxConns = maxConns
	cfg.PoolAcquireTimeout = 100 * time.Millisecond
	return cfg
}

func TestOpen_SQLiteInitAndUse(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, sqliteConfig(t, 1))
	require.NoError(t, err)
	defer s.Close(ctx)

	require.NoError(t, s.Init(ctx))

	err = dbx.WithConn(ctx, s.Acquirer, func(ctx context.Context, conn dbx.DBTX) error {
		_, err := s.Accounts(conn).Create(ctx, &models.Account{Email: "ada@example.com", Password: "pw", FirstName: "Ada"})
		return err
	})
	require.NoError(t, err)

	err = dbx.WithConn(ctx, s.Acquirer, func(ctx context.Context, conn dbx.DBTX) error {
		a, err := s.Accounts(conn).GetByEmail(ctx, "ada@example.com")
		if err == nil {
			assert.Equal(t, "Ada", a.FirstName)
		}
		return err
	})
	require.NoError(t, err)
}

func TestOpen_SQLitePoolExhausted(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, sqliteConfig(t, 1))
	require.NoError(t, err)
	defer s.Close(ctx)
	require.NoError(t, s.Init(ctx))

	_, release, err := s.Acquirer.Acquire(ctx)
	require.NoError(t, err)

	_, _, err = s.Acquirer.Acquire(ctx)
	assert.ErrorIs(t, err, common.ErrPoolExhausted)

	release()
	_, release2, err := s.Acquirer.Acquire(ctx)
	require.NoError(t, err, "a released handle is reusable")
	release2()
}

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.DriverMemory}
	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, s.DB)
	require.NoError(t, s.Init(context.Background()))
	require.NoError(t, s.Close(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreDriver: "oracle"})
	require.Error(t, err)
}

func TestOpen_PostgresBadDSN(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.DriverPostgres, DatabaseDSN: "postgres://%zz", PoolMaxConns: 1}
	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
}

type failingMigrations struct {
	repomanager.RepositoryManager
}

func (failingMigrations) RunMigrations(context.Context, *sql.DB) error {
	return errors.New("boom")
}

func TestInit_ErrorIsWrapped(t *testing.T) {
	s := NewMemory()
	s.Manager = failingMigrations{s.Manager}

	err := s.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema init")
}

func TestClose_JoinsErrors(t *testing.T) {
	s := &Store{closers: []func(context.Context) error{
		func(context.Context) error { return errors.New("a") },
		func(context.Context) error { return nil },
		func(context.Context) error { return errors.New("b") },
	}}
	err := s.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")
}

func TestMongoDatabase(t *testing.T) {
	assert.Equal(t, "auth", mongoDatabase("mongodb://localhost:27017/auth"))
	assert.Equal(t, "auth", mongoDatabase("mongodb://u:p@localhost/auth?authSource=admin"))
	assert.Equal(t, DefaultMongoDatabase, mongoDatabase("mongodb://localhost:27017"))
	assert.Equal(t, DefaultMongoDatabase, mongoDatabase("mongodb://localhost:27017/"))
}
