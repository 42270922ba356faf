package adapters

import "context"

// DBAdapter defines the interface for pool operations needed by the store.
type DBAdapter interface {
	QueryRow(ctx context.Context, query string) DBRow
	Acquire(ctx context.Context) (DBConn, error)
	Ping(ctx context.Context) error
	Stats() PoolStats
	Close()
}

// DBConn is a scoped loan of one connection from the pool.
// Release returns the connection; the loan must not outlive the request
// that acquired it.
type DBConn interface {
	QueryRow(ctx context.Context, query string) DBRow
	Release()
}

// DBRow defines the interface for a single query result row.
type DBRow interface {
	Scan(dest ...any) error
}

// PoolStats is a driver-independent snapshot of pool usage.
type PoolStats struct {
	AcquiredConns int64
	IdleConns     int64
	TotalConns    int64
	MaxConns      int64
}
