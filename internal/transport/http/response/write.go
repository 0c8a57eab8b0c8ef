package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CtxCode 写出的信封 code，供指标和访问日志读取
const CtxCode = "resp.code"

// Write HTTP 状态恒为 200，业务结果看 code
func Write(c *gin.Context, r Resp) {
	c.Set(CtxCode, r.Code)
	c.JSON(http.StatusOK, r)
}

// Abort 中间件拦截请求时用
func Abort(c *gin.Context, r Resp) {
	c.Set(CtxCode, r.Code)
	c.AbortWithStatusJSON(http.StatusOK, r)
}
