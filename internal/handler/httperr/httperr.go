package httperr

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func newResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail
	return resp
}

// AbortWithError keeps err on the gin context for the logging and error
// middleware while the client only sees msg.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := newResponse(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortUnavailable answers 503 with a Retry-After hint in whole seconds (min 1).
func AbortUnavailable(c *gin.Context, err error, msg string, retryAfterSeconds int) {
	c.Header("Retry-After", strconv.Itoa(max(1, retryAfterSeconds)))
	AbortWithError(c, http.StatusServiceUnavailable, err, msg, nil)
}

func InternalError() Response {
	return newResponse(http.StatusInternalServerError, "Internal server error", nil)
}
