package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values this package stores in contexts.
type contextKey string

const (
	loggerCtxKey    = contextKey("logger")
	sessionIDCtxKey = contextKey("sessionID")
)

// GetSessionIDFromContext retrieves the authenticated console session ID.
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	return SessionIDFromCtx(c.Request.Context())
}

// SessionIDFromCtx retrieves the console session ID from a standard context.
func SessionIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDCtxKey).(string)
	return id, ok && id != ""
}

// WithSessionID returns ctx carrying the console session ID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDCtxKey, sessionID)
}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger, or slog.Default.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
