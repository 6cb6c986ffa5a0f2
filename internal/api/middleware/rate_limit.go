package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Santini10/IC/pkg/response"
)

// RateLimiter 滑动窗口限流器；*redis.Client 实现了该接口
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 基于 Redis 滑动窗口的速率限制中间件
// limit: 窗口内允许的最大请求数，<= 0 表示关闭
// window: 滑动窗口时长
// limiter 为 nil 或出错时降级放行
func RateLimit(limiter RateLimiter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("painel:rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("限流检查失败，降级放行", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			response.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
