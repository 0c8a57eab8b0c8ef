package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	resp "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/response"
)

// Timeout 截止时间挂在请求 ctx 上，向 HR 后端的扇出调用一起受限。
// handler 已经写出（通常是 ez 映射的 504）时不再覆盖。
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if c.Writer.Written() || context.Cause(ctx) != context.DeadlineExceeded {
			return
		}
		resp.Abort(c, resp.Error(resp.CodeGatewayTimeout, "timeout"))
	}
}
