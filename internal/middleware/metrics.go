package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"guardrails/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route, keeping label
// cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics returns a Gin middleware recording request counts and latency by
// route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
