package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/response"
)

// SimpleRecovery panic 转成统一响应体
func SimpleRecovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.String("rid", RequestIDFrom(c)),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				resp.Abort(c, resp.Error(resp.CodeServerError, "internal error"))
			}
		}()
		c.Next()
	}
}
