package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/attachio/gin-pgx-attach/pgattach/ginfairing"
)

const sessionsTable = "async_sessions"
const healthCheckTimeout = time.Second * 3

func registerRoutes(engine *gin.Engine) {
	engine.GET("/", sessionCount)
	engine.GET("/stats", ginfairing.StatsHandler)
	engine.GET("/healthz", health)
}

// sessionCount borrows one connection for the duration of the request,
// counts the session rows, and surfaces failures instead of masking them
// with a fabricated zero.
func sessionCount(c *gin.Context) {
	store, err := ginfairing.FromContext(c)
	if err != nil {
		c.String(http.StatusServiceUnavailable, "database store unavailable")
		return
	}

	conn, acquireErr := store.Acquire(c.Request.Context())
	if acquireErr != nil {
		c.String(http.StatusServiceUnavailable, "no database connection available")
		return
	}
	defer conn.Release()

	count, countErr := conn.CountRows(c.Request.Context(), sessionsTable)
	if countErr != nil {
		c.String(http.StatusInternalServerError, "counting sessions failed")
		return
	}

	c.String(http.StatusOK, "%d Sessions in Database", count)
}

func health(c *gin.Context) {
	store, err := ginfairing.FromContext(c)
	if err != nil {
		c.String(http.StatusServiceUnavailable, "database store unavailable")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if pingErr := store.Ping(ctx); pingErr != nil {
		c.String(http.StatusServiceUnavailable, "database unreachable")
		return
	}

	c.String(http.StatusOK, "ok")
}
