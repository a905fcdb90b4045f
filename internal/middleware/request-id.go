package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// headerRequestID matches the header the hub sends, so client-side
// error reports carry the same id the mirror logs.
const headerRequestID = "X-Request-Id"

const contextKeyRequestID = "request_id"

// RequestID tags every request with an id, minting one when the caller
// did not send its own. The id is echoed back in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(contextKeyRequestID, requestID)
		c.Header(headerRequestID, requestID)

		c.Next()
	}
}
