package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen 外部传入的 Request-ID 最大长度
const requestIDMaxLen = 64

// RequestID 请求追踪 ID 中间件
// 优先使用请求头 X-Request-ID，缺失或过长时生成 UUID；
// 结果写入 gin.Context 与响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.NewString()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
