// Package helper provides schema helpers and test doubles for tests
// that exercise the fairing against a real Postgres instance.
package helper

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attachio/gin-pgx-attach/pgattach"
)

const sessionsTable = "async_sessions"

// MustPool builds and pings a pgx pool from the given configuration,
// failing the test on any error. The pool is closed via t.Cleanup.
func MustPool(t *testing.T, ctx context.Context, cfg pgattach.Config) *pgxpool.Pool {
	t.Helper()

	poolConfig, configErr := cfg.PoolConfig()
	if configErr != nil {
		t.Fatalf("building pool config failed: %v", configErr)
	}

	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		t.Fatalf("building pool failed: %v", poolErr)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		t.Fatalf("pinging database failed: %v", pingErr)
	}

	t.Cleanup(pool.Close)

	return pool
}

// CreateSessionsTable creates an empty sessions table, replacing any
// previous contents.
func CreateSessionsTable(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()

	ddl := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		sessionsTable,
	)

	if _, err := pool.Exec(ctx, ddl); err != nil {
		t.Fatalf("creating sessions table failed: %v", err)
	}

	if _, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", sessionsTable)); err != nil {
		t.Fatalf("truncating sessions table failed: %v", err)
	}
}

// SeedSessions inserts the given number of session rows.
func SeedSessions(t *testing.T, ctx context.Context, pool *pgxpool.Pool, count int) {
	t.Helper()

	for i := 0; i < count; i++ {
		insert := fmt.Sprintf("INSERT INTO %s (id) VALUES ('%s')", sessionsTable, uuid.NewString())

		if _, err := pool.Exec(ctx, insert); err != nil {
			t.Fatalf("seeding sessions table failed: %v", err)
		}
	}
}

// DropSessionsTable removes the sessions table entirely.
func DropSessionsTable(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", sessionsTable)); err != nil {
		t.Fatalf("dropping sessions table failed: %v", err)
	}
}
