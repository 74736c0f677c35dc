package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jbbaek/likelion-food/internal/metrics"
)

// RequestLog writes one log line per request and feeds the HTTP metrics.
func RequestLog(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()

		if route != "/metrics" {
			metrics.ObserveRequest(c.Request.Method, route, status, elapsed)
		}

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": elapsed.String(),
			"client":  c.ClientIP(),
		})
		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}
