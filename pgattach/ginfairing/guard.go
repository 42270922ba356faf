package ginfairing

import (
	"context"

	"github.com/attachio/gin-pgx-attach/pgattach/ginfairing/internal/adapters"
)

// Conn is a scoped loan of one connection from the pool, owned exclusively
// by the request that acquired it. It must be released when the request
// handling scope ends, on the success and the failure path alike.
type Conn struct {
	conn     adapters.DBConn
	logger   Logger
	released bool
}

// Release returns the connection to the pool. Calling Release more than
// once is a no-op, so it can sit in a defer next to explicit releases.
func (c *Conn) Release() {
	if c.released {
		return
	}

	c.released = true
	c.conn.Release()
}

// CountRows counts the rows of the given table on the borrowed connection.
// Query failures are surfaced, never masked with a default value.
func (c *Conn) CountRows(ctx context.Context, table string) (int64, error) {
	sqlQuery, buildErr := buildCountQuery(c.logger, table)
	if buildErr != nil {
		return 0, buildErr
	}

	return scanCount(ctx, c.logger, c.conn.QueryRow, sqlQuery)
}
