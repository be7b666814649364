package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"vibelink/internal/metrics"
)

// Metrics instruments HTTP request counts and latency.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordAPIRequest(c.Request.Method, routeOf(c), c.Writer.Status(), time.Since(start))
	}
}
