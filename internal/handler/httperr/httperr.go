package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the error body of every failed request. Code is stable for clients to branch
// on; Message is for people.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func newResponse(status int, code, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Code = code
	resp.Error.Message = msg
	return resp
}

func Internal() Response {
	return newResponse(http.StatusInternalServerError, CodeInternal, "Internal server error", nil)
}

// AbortWithError writes the response and records err on the context for the error and
// logging middleware.
func AbortWithError(c *gin.Context, status int, code string, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := newResponse(status, code, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
