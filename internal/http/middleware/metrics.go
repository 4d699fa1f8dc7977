package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"course_api/internal/metrics"
)

const unmatchedPath = "unmatched"

// Prometheus labels requests by route template, so /courses/1 and /courses/2
// share one series.
func Prometheus(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.InFlight.Inc()
		defer m.InFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		m.Latency.WithLabelValues(m.Service, c.Request.Method, path).
			Observe(time.Since(start).Seconds())
		m.Requests.WithLabelValues(m.Service, c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Inc()
	}
}
