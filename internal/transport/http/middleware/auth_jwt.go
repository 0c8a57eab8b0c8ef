package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/auth"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/hrapi"
	resp "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/response"
)

const CtxClaims = "claims"

// AuthJWT 校验 Bearer token；perm 非空时要求该权限或 admin 角色。
// 原始 token 放进请求上下文，调用 HR 后端时原样转发
func AuthJWT(j *auth.JWTer, perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		raw := strings.TrimPrefix(ah, "Bearer ")
		claims, err := j.Parse(raw)
		if err != nil {
			resp.Abort(c, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if !claims.Allows(perm) {
			resp.Abort(c, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(CtxClaims, claims)
		c.Request = c.Request.WithContext(hrapi.WithToken(c.Request.Context(), raw))
		c.Next()
	}
}

// ClaimsFrom 未经过 AuthJWT 时返回 nil
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
