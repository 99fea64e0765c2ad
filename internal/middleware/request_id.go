package middleware

import (
	"go-staffhub/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLength = 128
)

// RequestID propagates the caller's X-Request-ID, or mints one when the header
// is missing or unusable, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if !usableRequestID(rid) {
			rid = uuid.NewString()
		}

		c.Header(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}

// usableRequestID accepts short printable ASCII ids only; anything else would
// end up verbatim in logs and Kafka headers.
func usableRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] < '!' || rid[i] > '~' {
			return false
		}
	}
	return true
}
