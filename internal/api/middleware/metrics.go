package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/pkg/metrics"
)

// Metrics records request count and latency per matched route.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		m.Observe(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
