package middleware

import (
	"github.com/gin-gonic/gin"

	"checkbot/pkg/log"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags the request context with the caller's X-Request-ID or a
// fresh one, and echoes it back.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := log.WithRequestID(c.Request.Context(), c.GetHeader(HeaderRequestID))
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, log.RequestID(ctx))
		c.Next()
	}
}
