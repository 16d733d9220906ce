package middleware

import (
	"Tianji/internal/pkg/limiter"
	"Tianji/internal/pkg/response"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware 按登录用户（未登录按来源 IP）做每分钟固定窗口限流，
// 护住生成触发路径，命中内容的读请求也计数，换实现上的简单
func RateLimitMiddleware(fw *limiter.FixedWindow, category string, perMin int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMin <= 0 {
			c.Next()
			return
		}

		key := category + ":"
		if uid := c.GetUint64("user_id"); uid > 0 {
			key += strconv.FormatUint(uid, 10)
		} else {
			key += c.ClientIP()
		}

		if !fw.Allow(key, perMin, time.Minute) {
			response.Fail(c, response.TooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}
