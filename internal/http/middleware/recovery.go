package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a plain-text 500 carrying message.
// It sits inside RequestID and Logger so the panic is logged with the
// request id and still produces an access log line.
func Recovery(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			slog.ErrorContext(c.Request.Context(), "panic recovered",
				"error", rec,
				"route", c.FullPath(),
				"stack", string(debug.Stack()))

			c.Abort()
			if c.Writer.Written() {
				return
			}
			c.String(http.StatusInternalServerError, message)
		}()
		c.Next()
	}
}
