package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	KeyRequestID = "X-Request-ID"
	// 网关有时只带 correlation id
	keyCorrelationID = "X-Correlation-ID"
	maxRequestIDLen  = 128
)

func incomingID(c *gin.Context) string {
	for _, h := range [...]string{KeyRequestID, keyCorrelationID} {
		if v := c.GetHeader(h); v != "" && len(v) <= maxRequestIDLen {
			return v
		}
	}
	return ""
}

// RequestID 回写到响应头，HR 后端调用和日志都用同一个 id
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := incomingID(c)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(KeyRequestID, id)
		c.Writer.Header().Set(KeyRequestID, id)
		c.Next()
	}
}

func RequestIDFrom(c *gin.Context) string { return c.GetString(KeyRequestID) }
