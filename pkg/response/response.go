package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewOKResp builds the success envelope around data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
		Timestamp: DateTime(time.Now()),
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Error sends 400 with the error's message and optional field details.
func Error(c *gin.Context, err error, data map[string]interface{}) {
	if data == nil {
		data = make(map[string]interface{})
	}

	c.JSON(http.StatusBadRequest, Resp{
		ErrorCode: 1,
		Message:   err.Error(),
		Data:      data,
		Timestamp: DateTime(time.Now()),
	})
}

// InternalError sends 500 with the generic message. The error itself is
// logged upstream, never echoed to the client.
func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Message:   DefaultErrorMessage,
		Timestamp: DateTime(time.Now()),
	})
}

// TooManyRequests aborts the request with 429. Used by the rate limiter.
func TooManyRequests(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Resp{
		ErrorCode: http.StatusTooManyRequests,
		Message:   message,
		Timestamp: DateTime(time.Now()),
	})
}
