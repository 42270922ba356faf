package ginfairing

import (
	"github.com/attachio/gin-pgx-attach/pgattach"
)

// Logger interface for pool construction logging, per-request timing,
// warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring a Fairing.
type Option func(*Fairing) error

// WithLogger sets the logger for the fairing and the store it builds.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: per-request completion with timing, executed SQL (development use)
// Info level: pool construction and shutdown (production-safe)
// Warn level: non-critical issues
// Error level: pool construction and query failures.
func WithLogger(logger Logger) Option {
	return func(f *Fairing) error {
		f.logger = logger
		return nil
	}
}

// WithStore shares a pre-built store instead of letting the fairing
// construct its own pool. Attach then skips configuration validation and
// pool construction, and Close leaves the shared handle open.
func WithStore(store *Store) Option {
	return func(f *Fairing) error {
		if store == nil {
			return pgattach.ErrNilDatabaseConnection
		}

		f.store = store

		return nil
	}
}

// StoreOption defines a functional option for configuring a Store.
type StoreOption func(*Store) error

// WithStoreLogger sets the logger for a store that is built directly
// from an existing database handle.
func WithStoreLogger(logger Logger) StoreOption {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}
