package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/metrics"
)

// MetricsMiddleware records request latency by route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
