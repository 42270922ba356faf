package ginfairing

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	storeContextKey     = "ginfairing.store"
	requestIDContextKey = "ginfairing.request_id"

	logMsgRequestCompleted = "request completed"
	logAttrRequestID       = "request_id"
	logAttrPath            = "path"
	logAttrStatus          = "status"

	msgStoreUnavailable = "database store unavailable"
)

// middleware injects the shared store and a request id into every request
// context and debug-logs request completion with timing.
func (f *Fairing) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set(requestIDContextKey, requestID)
		c.Set(storeContextKey, f.store)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		if f.logger != nil {
			f.logger.Debug(logMsgRequestCompleted,
				logAttrRequestID, requestID,
				logAttrPath, c.Request.URL.Path,
				logAttrStatus, c.Writer.Status(),
				logAttrDurationMS, durationToMilliseconds(duration),
			)
		}
	}
}

// FromContext extracts the shared store from a request context.
// It fails with ErrMissingStore when no fairing was attached to the
// engine that dispatched the request.
func FromContext(c *gin.Context) (*Store, error) {
	value, exists := c.Get(storeContextKey)
	if !exists {
		return nil, ErrMissingStore
	}

	store, ok := value.(*Store)
	if !ok || store == nil {
		return nil, ErrMissingStore
	}

	return store, nil
}

// RequestID returns the id the fairing middleware assigned to this
// request, or an empty string when no fairing was attached.
func RequestID(c *gin.Context) string {
	value, exists := c.Get(requestIDContextKey)
	if !exists {
		return ""
	}

	requestID, _ := value.(string)

	return requestID
}

// RequireStore rejects requests before the handler body runs when the
// shared store is absent from application state, with a plain-text 503.
func RequireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := FromContext(c); err != nil {
			c.String(http.StatusServiceUnavailable, msgStoreUnavailable)
			c.Abort()

			return
		}

		c.Next()
	}
}
