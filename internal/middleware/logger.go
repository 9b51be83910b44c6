package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggerConfig controls the access log middleware.
type LoggerConfig struct {
	// SkipPaths are exact request paths that produce no log line.
	SkipPaths []string
}

// Logger writes one access log line per request.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return LoggerWithConfig(logger, LoggerConfig{})
}

// LoggerWithConfig writes one "request" line per request with the method,
// path, matched route, status, response size, latency and client IP. The
// level follows the status class. Errors attached to the gin context are
// appended as "errors". The request context is passed through so that a
// context-aware handler can add the request ID.
func LoggerWithConfig(logger *slog.Logger, cfg LoggerConfig) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := make([]slog.Attr, 0, 8)
		attrs = append(attrs,
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Int("bytes", c.Writer.Size()),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			attrs = append(attrs, slog.String("errors", errs.String()))
		}
		logger.LogAttrs(c.Request.Context(), statusLevel(status), "request", attrs...)
	}
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
