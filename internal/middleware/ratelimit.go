package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyaid/core/internal/pkg/response"
	"go.uber.org/zap"
)

const rateLimitMessage = "Too many requests, slow down"

// HitCounter counts hits per key within an expiring window.
type HitCounter interface {
	Hit(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimit enforces a fixed-window limit of max requests per client IP.
// Counter failures let the request through.
func RateLimit(counter HitCounter, max int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if window <= 0 {
		window = time.Second
	}
	retryAfter := strconv.Itoa(int((window + time.Second - 1) / time.Second))

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" || counter == nil || max <= 0 {
			c.Next()
			return
		}

		bucket := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("studyaid:rate_limit:%s:%d", ip, bucket)

		count, err := counter.Hit(c.Request.Context(), key, window+time.Second)
		if err != nil {
			if log != nil {
				log.Warn("rate limit counter unavailable", zap.Error(err))
			}
			c.Next()
			return
		}

		if count > int64(max) {
			c.Header("Retry-After", retryAfter)
			response.TooManyRequests(c, rateLimitMessage)
			return
		}

		c.Next()
	}
}
