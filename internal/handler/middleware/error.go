package middleware

import (
	"log/slog"
	"net/http"

	"carpool-api/internal/handler/httperr"
	"carpool-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Search backward through the error stack. AbortWithError
		// renders the envelope itself; this pass logs server-side
		// failures and renders anything left unwritten.
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			resp, ok := err.Meta.(httperr.Response)
			if !ok {
				continue
			}
			if resp.Status >= http.StatusInternalServerError {
				slog.Error("request failed",
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
					"stack", errs.ExtractStackLines(err.Err, 10),
				)
			}
			if !c.Writer.Written() {
				c.JSON(resp.Status, resp)
			}
			return
		}

		if c.Writer.Written() {
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": httperr.CodeInternal, "message": "Internal server error"}})
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"request_id", GetRequestID(c),
					"error", err,
					"path", c.Request.URL.Path,
				)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Code = httperr.CodeInternal
				resp.Error.Message = "Internal server error"

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}
