// Package storage opens the configured account store, sizes its handle
// pool and exposes everything services need: a repository manager, an
// acquirer bounding concurrent handles and a schema initialization hook.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	_ "modernc.org/sqlite"
)

// DefaultMongoDatabase is used when the mongo URI names no database.
const DefaultMongoDatabase = "authkeeper"

// Store is an opened account store.
type Store struct {
	// DB is nil for backends that are not reached through database/sql.
	DB       *sql.DB
	Manager  repomanager.RepositoryManager
	Acquirer dbx.Acquirer

	closers []func(context.Context) error
}

// Open connects to the store selected by cfg.StoreDriver. It does not touch
// the schema; call Init for that.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	case config.DriverSQLite:
		return openSQLite(cfg)
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewMemory returns a process-local store.
func NewMemory() *Store {
	return &Store{
		Manager:  repomanager.NewInMemoryRepositoryManager(),
		Acquirer: dbx.NoopAcquirer{},
	}
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	poolCfg.MinConns = int32(cfg.PoolMinConns)
	poolCfg.MaxConns = int32(cfg.PoolMaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	db.SetMaxOpenConns(cfg.PoolMaxConns)

	return &Store{
		DB:       db,
		Manager:  repomanager.NewPostgresRepositoryManager(),
		Acquirer: dbx.NewSQLAcquirer(db, cfg.PoolAcquireTimeout),
		closers: []func(context.Context) error{
			func(context.Context) error { return db.Close() },
			func(context.Context) error { pool.Close(); return nil },
		},
	}, nil
}

func openSQLite(cfg *config.Config) (*Store, error) {
	db, err := sql.Open("sqlite", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.PoolMaxConns)
	db.SetMaxIdleConns(max(cfg.PoolMinConns, 1))

	return &Store{
		DB:       db,
		Manager:  repomanager.NewSQLiteRepositoryManager(),
		Acquirer: dbx.NewSQLAcquirer(db, cfg.PoolAcquireTimeout),
		closers:  []func(context.Context) error{func(context.Context) error { return db.Close() }},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.DatabaseDSN).
		SetMinPoolSize(uint64(cfg.PoolMinConns)).
		SetMaxPoolSize(uint64(cfg.PoolMaxConns)).
		SetServerSelectionTimeout(cfg.PoolAcquireTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	coll := client.Database(mongoDatabase(cfg.DatabaseDSN)).Collection(accounts.CollectionName)

	return &Store{
		Manager:  repomanager.NewMongoRepositoryManager(coll),
		Acquirer: dbx.NoopAcquirer{},
		closers:  []func(context.Context) error{client.Disconnect},
	}, nil
}

// mongoDatabase extracts the database name from a mongodb:// URI path.
func mongoDatabase(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return DefaultMongoDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return DefaultMongoDatabase
}

// Init creates or upgrades the schema. Startup must abort when it fails.
func (s *Store) Init(ctx context.Context) error {
	if err := s.Manager.RunMigrations(ctx, s.DB); err != nil {
		return fmt.Errorf("schema init: %w", err)
	}
	return nil
}

// Accounts returns a repository bound to conn, a handle obtained from
// s.Acquirer.
func (s *Store) Accounts(conn dbx.DBTX) accounts.Repository {
	return s.Manager.Accounts(conn)
}

// Close releases the pool and any driver resources.
func (s *Store) Close(ctx context.Context) error {
	var errs []error
	for _, c := range s.closers {
		if err := c(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
