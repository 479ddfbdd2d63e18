package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/filecms/filecms/pkg/logger"
	"github.com/filecms/filecms/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimitMiddleware counts requests per client and route in fixed
// windows kept in Redis, so every CMS instance sharing the Redis shares the
// budget of floor(rps*window)+burst requests per window. When Redis cannot be
// reached the request is let through.
func RedisRateLimitMiddleware(client *redis.Client, rps float64, burst int, window time.Duration) gin.HandlerFunc {
	if client == nil {
		return RateLimitMiddleware(rps, burst)
	}
	if window < time.Second {
		window = time.Second
	}
	secs := int64(window / time.Second)
	budget := int64(rps*float64(secs)) + int64(burst)

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		now := time.Now().Unix()
		bucket := now / secs
		key := fmt.Sprintf("rl:%s:%s:%d", c.FullPath(), clientKey(c), bucket)

		var incr *redis.IntCmd
		_, err := client.TxPipelined(ctx, func(p redis.Pipeliner) error {
			incr = p.Incr(ctx, key)
			p.Expire(ctx, key, window+time.Second)
			return nil
		})
		if err != nil {
			logger.Warnf("rate limit check skipped: %v", err)
			metrics.RateLimitAllowed.WithLabelValues("redis_unavailable").Inc()
			c.Next()
			return
		}
		if incr.Val() > budget {
			c.Header("Retry-After", strconv.FormatInt((bucket+1)*secs-now, 10))
			metrics.RateLimitRejected.WithLabelValues("redis").Inc()
			c.String(http.StatusTooManyRequests, "Rate limit exceeded")
			c.Abort()
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		c.Next()
	}
}
