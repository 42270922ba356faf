package ginfairing

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/attachio/gin-pgx-attach/pgattach"
	"github.com/attachio/gin-pgx-attach/pgattach/ginfairing/internal/adapters"
)

const (
	logMsgAcquireFailed    = "acquiring connection from pool failed"
	logMsgBuildQueryFailed = "failed to build count query"
	logMsgScanRowFailed    = "failed to scan count query result"
	logMsgSQLExecuted      = "executed sql for: count"
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrTable           = "table"
	logAttrDurationMS      = "duration_ms"
	dialectPostgres        = "postgres"
)

// Store is the shared handle to the connection pool that the fairing
// places in application state. It is safe for concurrent use; every
// request borrows and releases its own connection independently.
type Store struct {
	db     adapters.DBAdapter
	logger Logger
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(pool *pgxpool.Pool, options ...StoreOption) (*Store, error) {
	if pool == nil {
		return nil, pgattach.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(pool), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...StoreOption) (*Store, error) {
	if db == nil {
		return nil, pgattach.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...StoreOption) (*Store, error) {
	if db == nil {
		return nil, pgattach.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...StoreOption) (*Store, error) {
	store := &Store{db: db}

	for _, option := range options {
		if err := option(store); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// Acquire borrows one connection from the pool for the duration of a
// request. The call blocks until a connection becomes available, the
// acquisition fails, or the context is canceled. The returned Conn must
// be released exactly once; Release is safe to call via defer on every path.
func (s *Store) Acquire(ctx context.Context) (*Conn, error) {
	conn, acquireErr := s.db.Acquire(ctx)
	if acquireErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgAcquireFailed, logAttrError, acquireErr.Error())
		}

		return nil, errors.Join(ErrAcquiringConnectionFailed, acquireErr)
	}

	return &Conn{conn: conn, logger: s.logger}, nil
}

// CountRows counts the rows of the given table using a pooled connection.
// Query failures are surfaced, never masked with a default value.
func (s *Store) CountRows(ctx context.Context, table string) (int64, error) {
	sqlQuery, buildErr := buildCountQuery(s.logger, table)
	if buildErr != nil {
		return 0, buildErr
	}

	return scanCount(ctx, s.logger, s.db.QueryRow, sqlQuery)
}

// Ping verifies the pool can reach the database.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Stats reports a snapshot of current pool usage.
func (s *Store) Stats() PoolStats {
	stats := s.db.Stats()

	return PoolStats{
		AcquiredConns: stats.AcquiredConns,
		IdleConns:     stats.IdleConns,
		TotalConns:    stats.TotalConns,
		MaxConns:      stats.MaxConns,
	}
}

// Close closes the underlying pool. Only the owner of the pool should
// call this; a fairing that built the pool closes it via Fairing.Close.
func (s *Store) Close() {
	s.db.Close()
}

func buildCountQuery(logger Logger, table string) (string, error) {
	if table == "" {
		if logger != nil {
			logger.Error(logMsgBuildQueryFailed, logAttrError, pgattach.ErrEmptyTableName.Error())
		}

		return "", errors.Join(ErrBuildingQueryFailed, pgattach.ErrEmptyTableName)
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(table).
		Select(goqu.COUNT(goqu.Star()))

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		if logger != nil {
			logger.Error(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, table)
		}

		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// scanCount runs a count query through the given single-row query func
// and logs the executed SQL with timing at debug level.
func scanCount(
	ctx context.Context,
	logger Logger,
	queryRow func(ctx context.Context, query string) adapters.DBRow,
	sqlQuery string,
) (int64, error) {

	var count int64

	start := time.Now()
	scanErr := queryRow(ctx, sqlQuery).Scan(&count)
	duration := time.Since(start)

	if logger != nil {
		logger.Debug(logMsgSQLExecuted, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}

	if scanErr != nil {
		if logger != nil {
			logger.Error(logMsgScanRowFailed, logAttrError, scanErr.Error(), logAttrQuery, sqlQuery)
		}

		return 0, errors.Join(ErrCountingRowsFailed, scanErr)
	}

	return count, nil
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
