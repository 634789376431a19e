package middleware

import (
	"leave_system/internal/metrics" // Prometheus collectors
	"strconv"                       // Status code formatting
	"time"                          // Request timing

	"github.com/gin-gonic/gin" // Gin web framework
)

// Metrics records request counts and latencies by route template
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched" // Keep label cardinality bounded
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
