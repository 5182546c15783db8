package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is used for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey     = contextKey("logger")
	userIDKey        = contextKey("userID")
	clientMetaCtxKey = contextKey("clientMeta")
)

// ClientMeta describes the caller of the current request.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetUserIDFromContext returns the authenticated user ID set by AuthMiddleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetClientMetaFromCtx returns the caller's address and user agent, if recorded.
func GetClientMetaFromCtx(ctx context.Context) ClientMeta {
	if ctx == nil {
		return ClientMeta{}
	}
	meta, _ := ctx.Value(clientMetaCtxKey).(ClientMeta)
	return meta
}
