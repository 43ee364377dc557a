package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDHeader = echo.HeaderXRequestID
	requestIDKey    = "request_id"
)

type loggerKey struct{}

// RequestLog returns Echo middleware that assigns a request id, attaches a
// request-scoped logger to the request context and logs one line per
// request. Server errors log at error level and client errors at warn.
// Probe requests log at debug.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			reqLog := log.With("request_id", reqID)
			ctx := context.WithValue(c.Request().Context(), loggerKey{}, reqLog)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			status := c.Response().Status
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			case isProbe(routePath(c)):
				level = slog.LevelDebug
			}

			reqLog.Log(ctx, level, "request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			)

			return err
		}
	}
}

// RequestID returns the id RequestLog assigned to the request, if any.
func RequestID(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}

// LoggerFrom returns the request-scoped logger stored by RequestLog, or
// fallback when the context carries none.
func LoggerFrom(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return fallback
}
