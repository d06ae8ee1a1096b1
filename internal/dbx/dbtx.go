// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by *sql.DB, *sql.Conn and *sql.Tx,
// and bounded acquisition of pooled handles for one logical operation.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// DBTX is the subset of database/sql used by our repos.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Acquirer hands out a store handle for the duration of one logical
// operation. The returned release func must be called exactly once.
type Acquirer interface {
	Acquire(ctx context.Context) (DBTX, func(), error)
}

// SQLAcquirer takes dedicated connections from a database/sql pool, waiting
// at most timeout for one to become free.
type SQLAcquirer struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLAcquirer(db *sql.DB, timeout time.Duration) *SQLAcquirer {
	return &SQLAcquirer{db: db, timeout: timeout}
}

func (a *SQLAcquirer) Acquire(ctx context.Context) (DBTX, func(), error) {
	acquireCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	conn, err := a.db.Conn(acquireCtx)
	if err != nil {
		// Only our own deadline means the pool stayed busy; a cancelled
		// caller context is reported as is.
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, nil, fmt.Errorf("%w: no handle within %s", common.ErrPoolExhausted, a.timeout)
		}
		return nil, nil, err
	}

	return conn, func() { _ = conn.Close() }, nil
}

// NoopAcquirer serves backends that manage their own handles (in-memory,
// document store). Acquire returns a nil DBTX.
type NoopAcquirer struct{}

func (NoopAcquirer) Acquire(ctx context.Context) (DBTX, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return nil, func() {}, nil
}

// WithConn acquires a handle, runs fn with it and releases the handle on
// every exit path, including panics.
//
// Typical use:
//
//	err := dbx.WithConn(ctx, acq, func(ctx context.Context, conn dbx.DBTX) error {
//	    _, err := repos.Accounts(conn).Create(ctx, account)
//	    return err
//	})
func WithConn(ctx context.Context, acq Acquirer, fn func(ctx context.Context, conn DBTX) error) error {
	conn, release, err := acq.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	return fn(ctx, conn)
}
