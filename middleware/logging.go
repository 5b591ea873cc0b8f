package middleware

import (
	"strconv"
	"time"

	"changelog-api/logger"
	"changelog-api/metrics"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request and records it in the HTTP metrics.
// Routes are labelled by their pattern so path parameters do not explode
// metric cardinality.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if m != nil {
			m.HTTPRequestsInFlight.Inc()
			defer m.HTTPRequestsInFlight.Dec()
		}

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		var err error
		if last := c.Errors.Last(); last != nil {
			err = last.Err
		}

		log.LogRequest(c.Request.Method, c.Request.URL.Path, status, duration, err)
		if m != nil {
			m.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(status), duration)
		}
	}
}
