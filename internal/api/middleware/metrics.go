package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"memo-whisper/internal/api/metrics"
)

// Metrics records request counts and latency per route template. The metrics
// endpoint itself is excluded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if path == "/metrics" {
			return
		}

		m.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
