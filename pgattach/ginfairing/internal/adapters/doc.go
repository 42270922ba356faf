// Package adapters provides database abstractions for the gin fairing.
//
// The adapters unify pgxpool.Pool, database/sql and sqlx behind one
// interface so the same store works regardless of which handle the
// application already owns: a shared pool, per-connection acquisition
// with scoped release, single-row queries and pool statistics.
package adapters
