// The sessions-server demo attaches a Postgres pool to a gin application
// and serves the session count from a single route.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/attachio/gin-pgx-attach/pgattach"
	"github.com/attachio/gin-pgx-attach/pgattach/ginfairing"
)

const shutdownTimeout = time.Second * 5

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if err := run(logger); err != nil {
		logger.Error("startup failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := pgattach.NewConfig().
		WithDatabase(envOr("SESSIONS_DB_NAME", "sessions")).
		WithUsername(envOr("SESSIONS_DB_USER", "sessions")).
		WithPassword(envOr("SESSIONS_DB_PASSWORD", "sessions")).
		WithHost(envOr("SESSIONS_DB_HOST", "localhost")).
		WithSSLMode(envOr("SESSIONS_DB_SSLMODE", "disable"))

	fairing, err := ginfairing.New(cfg, ginfairing.WithLogger(logger))
	if err != nil {
		return err
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	// the pool must be ready before the first request is dispatched
	if attachErr := fairing.Attach(ctx, engine); attachErr != nil {
		return attachErr
	}
	defer fairing.Close()

	registerRoutes(engine)

	server := &http.Server{
		Addr:    envOr("SESSIONS_LISTEN_ADDR", ":8080"),
		Handler: engine,
	}

	serveErr := make(chan error, 1)

	go func() {
		logger.Info("serving", "addr", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
