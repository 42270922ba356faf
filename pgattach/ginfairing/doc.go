// Package ginfairing attaches a PostgreSQL connection pool to a gin
// application's lifecycle and exposes a per-request handle to it.
//
// A Fairing builds the pool once at startup from a pgattach.Config, fails
// application startup when the pool cannot be constructed, and registers
// middleware that makes the shared Store available to every request.
// Handlers extract the store with FromContext and borrow a connection for
// the duration of one request with Store.Acquire.
//
// Usage example:
//
//	cfg := pgattach.NewConfig().
//		WithDatabase("sessions").
//		WithUsername("app").
//		WithPassword("secret")
//
//	fairing, _ := ginfairing.New(cfg, ginfairing.WithLogger(logger))
//
//	engine := gin.New()
//	if err := fairing.Attach(ctx, engine); err != nil {
//		return err // startup-fatal, no request is ever served
//	}
//	defer fairing.Close()
//
//	engine.GET("/", func(c *gin.Context) {
//		store, _ := ginfairing.FromContext(c)
//		conn, err := store.Acquire(c.Request.Context())
//		if err != nil {
//			c.String(http.StatusServiceUnavailable, "no connection available")
//			return
//		}
//		defer conn.Release()
//
//		count, err := conn.CountRows(c.Request.Context(), "async_sessions")
//		if err != nil {
//			c.String(http.StatusInternalServerError, "count failed")
//			return
//		}
//		c.String(http.StatusOK, "%d Sessions in Database", count)
//	})
//
// Attach must be called before routes are registered, so the injecting
// middleware applies to all of them.
//
// Applications that already own a database handle can share it instead of
// letting the fairing dial: build a Store with NewStoreFromPGXPool,
// NewStoreFromSQLDB or NewStoreFromSQLX and pass it via WithStore.
package ginfairing
