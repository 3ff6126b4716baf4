package middleware

import (
	"github.com/daybookhq/journal-sync-service/global"
	"github.com/daybookhq/journal-sync-service/pkg/app"
	"github.com/daybookhq/journal-sync-service/pkg/code"
	"github.com/daybookhq/journal-sync-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter 限流中间件，没有命中限流规则的路由直接放行
// 主要保护注册/登录这类无需认证的入口
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		if bucket, ok := l.GetBucket(key); ok {
			if bucket.TakeAvailable(1) == 0 {
				global.Log().Warn("rate limit exceeded",
					zap.String("key", key),
					zap.String("ip", c.ClientIP()))
				app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
