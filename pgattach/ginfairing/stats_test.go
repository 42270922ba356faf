package ginfairing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attachio/gin-pgx-attach/pgattach/ginfairing"
)

func Test_StatsHandler(t *testing.T) {
	fairing, err := ginfairing.New(validConfig(), ginfairing.WithStore(sharedStore(t)))
	require.NoError(t, err)

	engine := gin.New()
	require.NoError(t, fairing.Attach(context.Background(), engine))

	engine.GET("/stats", ginfairing.StatsHandler)

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")

	var stats ginfairing.PoolStats
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal(recorder.Body.Bytes(), &stats))

	// nothing has queried the lazy handle, so no connection exists yet
	assert.Equal(t, int64(0), stats.AcquiredConns)
	assert.Equal(t, int64(0), stats.TotalConns)
}

func Test_StatsHandler_WithoutFairing(t *testing.T) {
	engine := gin.New()
	engine.GET("/stats", ginfairing.StatsHandler)

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}
