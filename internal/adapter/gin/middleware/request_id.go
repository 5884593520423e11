package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"user-table-service/pkg/logger"
)

// RequestID tags every request with an ID, reusing the caller's X-Request-ID
// header when present, and stores it on the request context for logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(logger.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), requestID))
		c.Header(logger.RequestIDHeader, requestID)

		c.Next()
	}
}
