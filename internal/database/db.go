package database

import (
	"context"
	"database/sql"
	"errors"
)

// ErrUnavailable matches every *UnavailableError.
var ErrUnavailable = errors.New("database unavailable")

// UnavailableError marks a failure to reach Postgres at all: refused or
// dropped connections, server shutdown, connection limits and timeouts.
// Query, scan and constraint errors are returned unwrapped.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + ErrUnavailable.Error()
	}
	return e.Op + ": " + ErrUnavailable.Error() + ": " + e.Err.Error()
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// PoolStats is a point-in-time view of the connection pool.
type PoolStats struct {
	MaxConns          int32 `json:"max_conns"`
	TotalConns        int32 `json:"total_conns"`
	IdleConns         int32 `json:"idle_conns"`
	AcquiredConns     int32 `json:"acquired_conns"`
	EmptyAcquireCount int64 `json:"empty_acquire_count"`
}

type DB interface {
	Ping(ctx context.Context) error
	Close() error
	Stats() PoolStats

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Begin(ctx context.Context) (Tx, error)

	// SQLDB exposes the pool through database/sql for the migration runner.
	SQLDB() *sql.DB
}

// Tx is the write-only transaction surface the seeders need.
type Tx interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
