package middleware

import (
	"log/slog"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/simp-lee/logger"
)

const (
	requestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
)

// Upstream ids are reused only when they look like ids, never free text.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// RequestIDConfig controls how request ids are assigned.
type RequestIDConfig struct {
	// TrustUpstream reuses a well-formed X-Request-ID sent by a proxy.
	TrustUpstream bool
	// Generate returns a fresh id. Defaults to a random UUID.
	Generate func() string
}

// RequestID returns a gin middleware that gives every request a fresh UUID.
func RequestID() gin.HandlerFunc {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig returns a gin middleware that assigns a request id,
// echoes it in the X-Request-ID response header and attaches it to the
// request context so every slog record of the request carries request_id.
func RequestIDWithConfig(cfg RequestIDConfig) gin.HandlerFunc {
	generate := cfg.Generate
	if generate == nil {
		generate = uuid.NewString
	}

	return func(c *gin.Context) {
		id := upstreamRequestID(c, cfg.TrustUpstream)
		if id == "" {
			id = generate()
		}

		c.Set(requestIDContextKey, id)
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(
			logger.WithContextAttrs(c.Request.Context(), slog.String(requestIDContextKey, id)),
		)

		c.Next()
	}
}

func upstreamRequestID(c *gin.Context, trusted bool) string {
	if !trusted {
		return ""
	}
	if id := c.GetHeader(requestIDHeader); requestIDPattern.MatchString(id) {
		return id
	}
	return ""
}

// GetRequestID returns the request id assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
