package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// RateLimiter counts hits in a sliding window.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 基于 Redis 滑动窗口的速率限制中间件，按客户端 IP 和路由计数
// limiter 为 nil 时降级放行（与 JWTAuth 策略一致）
func RateLimit(limiter RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// Redis 出错时降级放行
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "Too many attempts, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
