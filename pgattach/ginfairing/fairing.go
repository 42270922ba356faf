package ginfairing

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attachio/gin-pgx-attach/pgattach"
)

const (
	logMsgPoolReady       = "connection pool ready"
	logMsgPoolClosed      = "connection pool closed"
	logMsgPoolBuildFailed = "building connection pool failed"
	logAttrHost           = "host"
	logAttrDatabase       = "database"
	logAttrMaxConnections = "max_connections"
)

// Fairing builds a PostgreSQL connection pool at application startup and
// registers it in application-wide state, before any request is accepted.
type Fairing struct {
	config   pgattach.Config
	logger   Logger
	store    *Store
	pool     *pgxpool.Pool // set only when the fairing built the pool itself
	attached bool
}

// New produces a fairing from a connection configuration and optional
// functional options. The pool is not built here; that happens in Attach.
func New(config pgattach.Config, options ...Option) (*Fairing, error) {
	fairing := &Fairing{config: config}

	for _, option := range options {
		if err := option(fairing); err != nil {
			return nil, err
		}
	}

	return fairing, nil
}

// Attach validates the configuration, builds the connection pool, and
// registers middleware on the engine that exposes the shared store to
// every request. It runs exactly once per fairing, before the engine
// starts serving; a construction failure here is fatal to startup and
// must abort the application launch.
//
// Attach must be called before routes are registered so the injecting
// middleware applies to all of them. When a store was shared via
// WithStore, validation and pool construction are skipped. A second
// Attach fails with ErrAlreadyAttached; the middleware must not be
// registered twice.
func (f *Fairing) Attach(ctx context.Context, engine *gin.Engine) error {
	if engine == nil {
		return ErrNilEngine
	}

	if f.attached {
		return ErrAlreadyAttached
	}

	if f.store == nil {
		if err := f.buildPool(ctx); err != nil {
			return err
		}
	}

	engine.Use(f.middleware())
	f.attached = true

	return nil
}

// Store returns the shared store, or nil before a successful Attach
// when no store was shared via WithStore.
func (f *Fairing) Store() *Store {
	return f.store
}

// Close releases the connection pool if the fairing owns it.
// A store shared via WithStore stays open; its owner closes it.
func (f *Fairing) Close() {
	if f.pool == nil {
		return
	}

	f.pool.Close()
	f.pool = nil

	if f.logger != nil {
		f.logger.Info(logMsgPoolClosed)
	}
}

func (f *Fairing) buildPool(ctx context.Context) error {
	if err := f.config.Validate(); err != nil {
		return err
	}

	poolConfig, configErr := f.config.PoolConfig()
	if configErr != nil {
		f.logBuildFailed(configErr)
		return errors.Join(ErrPoolConstructionFailed, configErr)
	}

	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		f.logBuildFailed(poolErr)
		return errors.Join(ErrPoolConstructionFailed, poolErr)
	}

	// Dial eagerly: bad credentials or an unreachable host must surface
	// at startup, not at the first request.
	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		f.logBuildFailed(pingErr)

		return errors.Join(ErrPoolConstructionFailed, pingErr)
	}

	store, storeErr := NewStoreFromPGXPool(pool, WithStoreLogger(f.logger))
	if storeErr != nil {
		pool.Close()
		return storeErr
	}

	f.pool = pool
	f.store = store

	if f.logger != nil {
		f.logger.Info(logMsgPoolReady,
			logAttrHost, f.config.Host(),
			logAttrDatabase, f.config.Database(),
			logAttrMaxConnections, f.config.MaxConnections(),
		)
	}

	return nil
}

func (f *Fairing) logBuildFailed(err error) {
	if f.logger != nil {
		f.logger.Error(logMsgPoolBuildFailed,
			logAttrError, err.Error(),
			logAttrHost, f.config.Host(),
			logAttrDatabase, f.config.Database(),
		)
	}
}
