package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"eventmanager/logging"
)

type QuotaRule struct {
	Limit  int           // requests allowed per window
	Window time.Duration // counter lifetime, starting at the first request
	KeyFn  func(*gin.Context) string
}

// WriteQuotaKey counts writes per client IP per day.
func WriteQuotaKey(c *gin.Context) string {
	return "quota:writes:ip:" + c.ClientIP()
}

// Quota counts requests per key in Redis and answers 429 above the limit.
// Requests pass when Redis cannot be reached.
func Quota(rdb *redis.Client, rule QuotaRule, logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rule.KeyFn(c)
		if key == "" {
			c.Next()
			return
		}
		ctx := c.Request.Context()

		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.WithError(err).WithField(logging.FldKey, key).Warn("Quota check skipped")
			c.Next()
			return
		}
		if n == 1 {
			if err := rdb.Expire(ctx, key, rule.Window).Err(); err != nil {
				logger.WithError(err).WithField(logging.FldKey, key).Warn("Setting quota window failed")
			}
		}
		if int(n) > rule.Limit {
			c.String(http.StatusTooManyRequests, "Usage quota exceeded. Please try again later.")
			c.Abort()
			return
		}
		c.Header("X-Quota-Used", fmt.Sprintf("%d/%d", n, rule.Limit))
		c.Next()
	}
}
