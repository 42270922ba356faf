package ginfairing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
)

const contentTypeJSON = "application/json"

// PoolStats is a snapshot of current pool usage, unified across the
// pgx, sql and sqlx adapters.
type PoolStats struct {
	AcquiredConns int64 `json:"acquired_conns"`
	IdleConns     int64 `json:"idle_conns"`
	TotalConns    int64 `json:"total_conns"`
	MaxConns      int64 `json:"max_conns"`
}

// StatsHandler serves the shared store's pool statistics as JSON.
// Mount it on any route of an engine the fairing was attached to.
func StatsHandler(c *gin.Context) {
	store, err := FromContext(c)
	if err != nil {
		c.String(http.StatusServiceUnavailable, msgStoreUnavailable)
		return
	}

	payload, marshalErr := jsoniter.ConfigFastest.Marshal(store.Stats())
	if marshalErr != nil {
		c.String(http.StatusInternalServerError, "failed to marshal pool stats")
		return
	}

	c.Data(http.StatusOK, contentTypeJSON, payload)
}
