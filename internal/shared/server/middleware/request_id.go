package middleware

import (
	"github.com/gin-gonic/gin"

	"careers-backend/internal/shared/util"
)

const requestIDKey = "requestId"

// RequestID attaches a request ID to context and response header. A caller
// supplied X-Request-Id is kept so a submission can be traced from the
// frontend through to the notification queue.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = util.NewID("req")
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// RequestIDFromContext fetches the request ID stored by RequestID middleware.
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(requestIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
