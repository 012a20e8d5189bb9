package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"eventmanager/logging"
)

// Logger writes one entry per request. Server errors are logged at error
// level together with the errors handlers attached to the context.
func Logger(logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			logging.FldMethod:  c.Request.Method,
			logging.FldPath:    c.Request.URL.Path,
			logging.FldStatus:  c.Writer.Status(),
			logging.FldLatency: time.Since(start).String(),
			logging.FldIP:      c.ClientIP(),
		})
		switch {
		case len(c.Errors) > 0 && c.Writer.Status() >= 500:
			entry.WithError(c.Errors.Last()).Error("Request failed")
		case len(c.Errors) > 0:
			entry.WithError(c.Errors.Last()).Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	}
}
