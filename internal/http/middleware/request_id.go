package middleware

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/fortune/common/id"
	"basegraph.app/fortune/common/logger"
)

const RequestIDHeader = "X-Request-Id"

const maxRequestIDLen = 128

// RequestID tags each request with an id, reusing a caller-supplied one when sane,
// and stores it in the request context for log enrichment.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = id.NewRequestID()
		}

		c.Header(RequestIDHeader, requestID)
		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			RequestID: logger.Ptr(requestID),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
