package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tecpap/backend/internal/interfaces/http/dto"
)

// ErrCodeRequestTooLarge is returned when a request body exceeds the limit.
const ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"

// BodyLimit rejects request bodies larger than maxBytes. Mail-channel drafts
// can carry long extracted text, but nothing legitimate approaches the limit.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size"))
			return
		}

		// Chunked requests declare no length; cap them while the handler reads.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
