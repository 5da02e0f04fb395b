package middleware

import (
	"log/slog"
	"net/http"

	"bookride-api/internal/handler/httperr"
	"bookride-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLogLines = 12

// ErrorHandler logs server-side failures recorded by httperr and renders
// the last public error when a handler aborted without writing a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		var last *httperr.Response
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			resp, ok := err.Meta.(httperr.Response)
			if !ok {
				continue
			}
			if last == nil {
				last = &resp
			}
			if resp.Status >= http.StatusInternalServerError {
				slog.ErrorContext(c.Request.Context(), "request failed",
					"status", resp.Status,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
					"stack", errs.StackLines(err.Err, stackLogLines),
				)
			}
		}

		if c.Writer.Written() {
			return
		}
		if last != nil {
			c.JSON(last.Status, *last)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.Response{Detail: httperr.MsgInternal})
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.ErrorContext(c.Request.Context(), "recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
				)

				resp := httperr.Response{Status: http.StatusInternalServerError, Detail: httperr.MsgInternal}
				c.AbortWithStatusJSON(resp.Status, resp)
			}
		}()
		c.Next()
	}
}
