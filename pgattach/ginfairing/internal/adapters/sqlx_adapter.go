package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DBAdapter for sqlx.DB.
type SQLXAdapter struct {
	db *sqlx.DB
}

// NewSQLXAdapter creates a new SQLX adapter around a sqlx.DB.
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

// QueryRow runs a single-row query on the pool.
func (s *SQLXAdapter) QueryRow(ctx context.Context, query string) DBRow {
	return s.db.QueryRowxContext(ctx, query)
}

// Acquire borrows one connection from the pool.
func (s *SQLXAdapter) Acquire(ctx context.Context) (DBConn, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}

	return &sqlxConn{conn: conn}, nil
}

// Ping verifies the pool can reach the database.
func (s *SQLXAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Stats reports current pool usage of the underlying sql.DB.
func (s *SQLXAdapter) Stats() PoolStats {
	stats := s.db.Stats()

	return PoolStats{
		AcquiredConns: int64(stats.InUse),
		IdleConns:     int64(stats.Idle),
		TotalConns:    int64(stats.OpenConnections),
		MaxConns:      int64(stats.MaxOpenConnections),
	}
}

// Close closes the pool.
func (s *SQLXAdapter) Close() {
	_ = s.db.Close()
}

// sqlxConn wraps sqlx.Conn to implement the DBConn interface.
type sqlxConn struct {
	conn *sqlx.Conn
}

// QueryRow runs a single-row query on the borrowed connection.
func (c *sqlxConn) QueryRow(ctx context.Context, query string) DBRow {
	return c.conn.QueryRowxContext(ctx, query)
}

// Release returns the connection to the pool.
func (c *sqlxConn) Release() {
	_ = c.conn.Close()
}
