package adapters

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXAdapter implements DBAdapter for pgxpool.Pool.
type PGXAdapter struct {
	pool *pgxpool.Pool
}

// NewPGXAdapter creates a new PGX adapter around a pool.
func NewPGXAdapter(pool *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{pool: pool}
}

// QueryRow runs a single-row query on the pool.
func (p *PGXAdapter) QueryRow(ctx context.Context, query string) DBRow {
	return p.pool.QueryRow(ctx, query)
}

// Acquire borrows one connection from the pool, blocking until a
// connection becomes available or the context is canceled.
func (p *PGXAdapter) Acquire(ctx context.Context) (DBConn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	return &pgxConn{conn: conn}, nil
}

// Ping verifies the pool can reach the database.
func (p *PGXAdapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Stats reports current pool usage.
func (p *PGXAdapter) Stats() PoolStats {
	stat := p.pool.Stat()

	return PoolStats{
		AcquiredConns: int64(stat.AcquiredConns()),
		IdleConns:     int64(stat.IdleConns()),
		TotalConns:    int64(stat.TotalConns()),
		MaxConns:      int64(stat.MaxConns()),
	}
}

// Close closes the pool.
func (p *PGXAdapter) Close() {
	p.pool.Close()
}

// pgxConn wraps pgxpool.Conn to implement the DBConn interface.
type pgxConn struct {
	conn *pgxpool.Conn
}

// QueryRow runs a single-row query on the borrowed connection.
func (c *pgxConn) QueryRow(ctx context.Context, query string) DBRow {
	return c.conn.QueryRow(ctx, query)
}

// Release returns the connection to the pool.
func (c *pgxConn) Release() {
	c.conn.Release()
}
