package ginfairing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attachio/gin-pgx-attach/pgattach"
	"github.com/attachio/gin-pgx-attach/pgattach/ginfairing"
	testconfig "github.com/attachio/gin-pgx-attach/testutil/config"
	"github.com/attachio/gin-pgx-attach/testutil/helper"
)

// integrationConfig skips the test unless PGATTACH_TEST_HOST points at a
// running Postgres instance.
func integrationConfig(t *testing.T) pgattach.Config {
	t.Helper()

	cfg, ok := testconfig.FromEnv()
	if !ok {
		t.Skip("set PGATTACH_TEST_HOST to run integration tests")
	}

	return cfg
}

// sessionCountHandler mirrors the demo server's GET / handler: borrow one
// connection, count the sessions, surface failures.
func sessionCountHandler(c *gin.Context) {
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

	count, countErr := conn.CountRows(c.Request.Context(), "async_sessions")
	if countErr != nil {
		c.String(http.StatusInternalServerError, "counting sessions failed")
		return
	}

	c.String(http.StatusOK, "%d Sessions in Database", count)
}

func attachedEngine(t *testing.T, ctx context.Context, cfg pgattach.Config) (*gin.Engine, *ginfairing.Fairing) {
	t.Helper()

	fairing, err := ginfairing.New(cfg)
	require.NoError(t, err)
	t.Cleanup(fairing.Close)

	engine := gin.New()
	require.NoError(t, fairing.Attach(ctx, engine))
	engine.GET("/", sessionCountHandler)

	return engine, fairing
}

func Test_Integration_SessionCount_ReturnsLiteralBody(t *testing.T) {
	cfg := integrationConfig(t)
	ctx := context.Background()

	pool := helper.MustPool(t, ctx, cfg)
	helper.CreateSessionsTable(t, ctx, pool)
	helper.SeedSessions(t, ctx, pool, 3)

	engine, _ := attachedEngine(t, ctx, cfg)

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "3 Sessions in Database", recorder.Body.String())
}

func Test_Integration_MissingTable_SurfacesError(t *testing.T) {
	cfg := integrationConfig(t)
	ctx := context.Background()

	pool := helper.MustPool(t, ctx, cfg)
	helper.DropSessionsTable(t, ctx, pool)

	engine, _ := attachedEngine(t, ctx, cfg)

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	// a missing table is an error, not a fabricated zero count
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "counting sessions failed", recorder.Body.String())
}

func Test_Integration_ConcurrentRequestsBeyondPoolCapacity(t *testing.T) {
	const poolCapacity = 2
	const concurrentRequests = 8

	cfg := integrationConfig(t).WithMaxConnections(poolCapacity)
	ctx := context.Background()

	pool := helper.MustPool(t, ctx, cfg)
	helper.CreateSessionsTable(t, ctx, pool)
	helper.SeedSessions(t, ctx, pool, 3)

	engine, fairing := attachedEngine(t, ctx, cfg)

	var wg sync.WaitGroup
	codes := make([]int, concurrentRequests)

	for i := 0; i < concurrentRequests; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			recorder := httptest.NewRecorder()
			engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
			codes[i] = recorder.Code
		}(i)
	}

	wg.Wait()

	// requests beyond capacity wait for a connection instead of erroring
	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}

	// acquire/release is balanced: every borrowed connection went back
	assert.Equal(t, int64(0), fairing.Store().Stats().AcquiredConns)
}

func Test_Integration_ConnRelease_IsIdempotent(t *testing.T) {
	cfg := integrationConfig(t)
	ctx := context.Background()

	pool := helper.MustPool(t, ctx, cfg)
	helper.CreateSessionsTable(t, ctx, pool)

	store, storeErr := ginfairing.NewStoreFromPGXPool(pool)
	require.NoError(t, storeErr)

	conn, acquireErr := store.Acquire(ctx)
	require.NoError(t, acquireErr)

	conn.Release()
	conn.Release() // the second release is a no-op

	assert.Equal(t, int64(0), store.Stats().AcquiredConns)

	// the pool stays usable after the double release
	count, countErr := store.CountRows(ctx, "async_sessions")
	require.NoError(t, countErr)
	assert.Equal(t, int64(0), count)
}

func Test_Integration_SharedPGXPoolStore(t *testing.T) {
	cfg := integrationConfig(t)
	ctx := context.Background()

	pool := helper.MustPool(t, ctx, cfg)
	helper.CreateSessionsTable(t, ctx, pool)
	helper.SeedSessions(t, ctx, pool, 5)

	store, storeErr := ginfairing.NewStoreFromPGXPool(pool)
	require.NoError(t, storeErr)

	fairing, err := ginfairing.New(pgattach.NewConfig(), ginfairing.WithStore(store))
	require.NoError(t, err)

	engine := gin.New()
	require.NoError(t, fairing.Attach(ctx, engine))
	engine.GET("/", sessionCountHandler)

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "5 Sessions in Database", recorder.Body.String())
}
