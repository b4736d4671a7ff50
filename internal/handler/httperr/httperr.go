package httperr

import (
	"github.com/gin-gonic/gin"
)

// Machine-readable error codes; the dashboard branches on these, the
// message is for humans only.
const (
	CodeInvalidRequest      = "invalid-request"
	CodeInvalidWindow       = "invalid-window"
	CodeCarNotFound         = "car-not-found"
	CodeNotFound            = "not-found"
	CodeResourceUnavailable = "resource-unavailable"
	CodeOverlap             = "overlap"
	CodeForbidden           = "forbidden"
	CodeInternal            = "internal"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
