package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/sitecms/internal/metrics"
)

// Metrics returns a gin middleware that counts requests and observes their
// latency. The route label is the matched route pattern, so path parameters
// do not explode label cardinality; unmatched requests use "unmatched".
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
