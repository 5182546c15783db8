package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// IdempotencyHeader is the request header clients use to make retries safe.
const IdempotencyHeader = "Idempotency-Key"

// pendingReservationTTL bounds how long a reservation blocks its key if the
// process dies before completing the request.
const pendingReservationTTL = 2 * time.Minute

// StoredResponse is a response replayed for a repeated idempotency key.
// A Pending entry marks a request that is still being processed.
type StoredResponse struct {
	Pending     bool   `json:"pending,omitempty"`
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore keeps responses keyed by idempotency key.
type IdempotencyStore interface {
	// Reserve atomically claims key with a pending entry. It returns false when the key
	// already has an entry, pending or complete.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Lookup returns the stored entry, or nil when the key is unknown.
	Lookup(ctx context.Context, key string) (*StoredResponse, error)
	// Store replaces the entry for key with the final response.
	Store(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
	// Release drops the entry for key so the request can be retried.
	Release(ctx context.Context, key string) error
}

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a request repeats an Idempotency-Key
// for the same user and practice. Requests without the header pass through untouched.
// Only the request holding the reservation runs the handler; concurrent repeats get 409.
// Server errors and rate-limited responses are not stored so they can be retried.
func Idempotency(store IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	reservationTTL := pendingReservationTTL
	if ttl > 0 && ttl < reservationTTL {
		reservationTTL = ttl
	}

	return func(c *gin.Context) {
		clientKey := strings.TrimSpace(c.GetHeader(IdempotencyHeader))
		if store == nil || clientKey == "" {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		userID, _ := GetUserIDFromContext(c)
		key := strings.Join([]string{c.Param("practice_id"), userID, c.FullPath(), clientKey}, "|")

		reserved, err := store.Reserve(c.Request.Context(), key, reservationTTL)
		if err != nil {
			logger.Warn("Idempotency reservation failed, processing request normally", slog.String("error", err.Error()))
			c.Next()
			return
		}
		if !reserved {
			replayOrConflict(c, logger, store, key)
			return
		}

		// The store writes must happen even if the client has gone away.
		storeCtx := context.WithoutCancel(c.Request.Context())
		completed := false
		defer func() {
			if completed {
				return
			}
			if err := store.Release(storeCtx, key); err != nil {
				logger.Warn("Failed to release idempotency key", slog.String("error", err.Error()))
			}
		}()

		writer := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		status := writer.Status()
		if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
			return
		}
		resp := StoredResponse{
			StatusCode:  status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}
		if err := store.Store(storeCtx, key, resp, ttl); err != nil {
			logger.Warn("Failed to store idempotent response", slog.String("error", err.Error()))
			return
		}
		completed = true
	}
}

// replayOrConflict answers a request whose key is already taken.
func replayOrConflict(c *gin.Context, logger *slog.Logger, store IdempotencyStore, key string) {
	stored, err := store.Lookup(c.Request.Context(), key)
	if err != nil {
		logger.Error("Idempotency lookup failed", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Idempotency store unavailable, please retry"})
		return
	}
	// A missing entry means the holder released it between Reserve and Lookup.
	if stored == nil || stored.Pending {
		logger.Info("Request with idempotency key already in progress")
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "request with this Idempotency-Key is in progress"})
		return
	}

	logger.Info("Replaying stored response for idempotency key")
	c.Header("Idempotent-Replayed", "true")
	c.Data(stored.StatusCode, stored.ContentType, stored.Body)
	c.Abort()
}
