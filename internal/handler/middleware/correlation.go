package middleware

import (
	"strings"

	"hotel-reservation/internal/pkg/correlation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxCorrelationIDLength = 128

// Correlation accepts the caller's correlation id or mints one, stores it in
// the request context and echoes it back.
func Correlation() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(correlation.Header))
		if id == "" || len(id) > maxCorrelationIDLength {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(correlation.WithID(c.Request.Context(), id))
		c.Header(correlation.Header, id)
		c.Next()
	}
}
