package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/response"
)

// MaxBodyBytes 角色载荷都很小。声明的长度超限直接拒绝，
// 未声明长度的由 MaxBytesReader 在读取时截断，绑定报错后由 ez 返回 400。
func MaxBodyBytes(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			resp.Abort(c, resp.Error(resp.CodeBadRequest, "request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
