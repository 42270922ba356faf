package ginfairing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attachio/gin-pgx-attach/pgattach/ginfairing"
)

func Test_FromContext_WithoutFairing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := ginfairing.FromContext(c)

	assert.ErrorIs(t, err, ginfairing.ErrMissingStore)
}

func Test_RequireStore_RejectsRequestsWithoutFairing(t *testing.T) {
	engine := gin.New()
	engine.Use(ginfairing.RequireStore())
	engine.GET("/", func(c *gin.Context) {
		t.Fatal("handler body must not run without a store")
	})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, "database store unavailable", recorder.Body.String())
}

func Test_RequireStore_PassesRequestsWithFairing(t *testing.T) {
	fairing, err := ginfairing.New(validConfig(), ginfairing.WithStore(sharedStore(t)))
	require.NoError(t, err)

	engine := gin.New()
	require.NoError(t, fairing.Attach(context.Background(), engine))

	engine.Use(ginfairing.RequireStore())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())
}

func Test_RequestID_AssignedPerRequest(t *testing.T) {
	fairing, err := ginfairing.New(validConfig(), ginfairing.WithStore(sharedStore(t)))
	require.NoError(t, err)

	engine := gin.New()
	require.NoError(t, fairing.Attach(context.Background(), engine))

	var requestIDs []string

	engine.GET("/", func(c *gin.Context) {
		requestIDs = append(requestIDs, ginfairing.RequestID(c))
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	}

	require.Len(t, requestIDs, 2)
	assert.NotEqual(t, requestIDs[0], requestIDs[1])

	for _, requestID := range requestIDs {
		_, parseErr := uuid.Parse(requestID)
		assert.NoError(t, parseErr)
	}
}

func Test_RequestID_EmptyWithoutFairing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, ginfairing.RequestID(c))
}
