package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/metrics"
)

// PrometheusMiddleware records request counts and latencies per method/path.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		metrics.RequestCounter.WithLabelValues(method, path).Inc()
		metrics.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
