package adapters

import (
	"context"
	"database/sql"
)

// SQLAdapter implements DBAdapter for database/sql.
type SQLAdapter struct {
	db *sql.DB
}

// NewSQLAdapter creates a new SQL adapter around a sql.DB.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

// QueryRow runs a single-row query on the pool.
func (s *SQLAdapter) QueryRow(ctx context.Context, query string) DBRow {
	return s.db.QueryRowContext(ctx, query)
}

// Acquire borrows one connection from the pool.
func (s *SQLAdapter) Acquire(ctx context.Context) (DBConn, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	return &sqlConn{conn: conn}, nil
}

// Ping verifies the pool can reach the database.
func (s *SQLAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Stats reports current pool usage, mapped from sql.DBStats.
func (s *SQLAdapter) Stats() PoolStats {
	stats := s.db.Stats()

	return PoolStats{
		AcquiredConns: int64(stats.InUse),
		IdleConns:     int64(stats.Idle),
		TotalConns:    int64(stats.OpenConnections),
		MaxConns:      int64(stats.MaxOpenConnections),
	}
}

// Close closes the pool.
func (s *SQLAdapter) Close() {
	_ = s.db.Close()
}

// sqlConn wraps sql.Conn to implement the DBConn interface.
type sqlConn struct {
	conn *sql.Conn
}

// QueryRow runs a single-row query on the borrowed connection.
func (c *sqlConn) QueryRow(ctx context.Context, query string) DBRow {
	return c.conn.QueryRowContext(ctx, query)
}

// Release returns the connection to the pool.
func (c *sqlConn) Release() {
	_ = c.conn.Close()
}
