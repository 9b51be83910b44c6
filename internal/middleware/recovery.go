package middleware

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/sitecms/internal/pkg"
)

// Recovery turns a handler panic into a 500 with the generic error envelope
// and logs the panic value with its stack. Nothing is written when the
// response has already started or the client connection is gone.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			brokenPipe := isBrokenPipe(rec)
			attrs := []slog.Attr{
				slog.Any("panic", rec),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
			}
			if !brokenPipe {
				attrs = append(attrs, slog.String("stack", string(debug.Stack())))
			}
			logger.LogAttrs(c.Request.Context(), slog.LevelError, "panic recovered", attrs...)

			if brokenPipe {
				if err, ok := rec.(error); ok {
					_ = c.Error(err)
				}
				c.Abort()
				return
			}
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, pkg.ErrorResponse{Message: "internal server error"})
		}()
		c.Next()
	}
}

// isBrokenPipe reports whether a panic value is a write to a closed client
// connection.
func isBrokenPipe(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if errors.As(opErr, &sysErr) {
		return errors.Is(sysErr.Err, syscall.EPIPE) || errors.Is(sysErr.Err, syscall.ECONNRESET)
	}
	return false
}
