package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/userbook/userbook/internal/users"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// AccessLogMiddleware logs every request with its outcome
func AccessLogMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		logger.Info("Request handled",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(startTime)),
			zap.String("remote_addr", c.ClientIP()))
	}
}

// ErrorPageMiddleware renders the generic error page for errors attached by handlers
func ErrorPageMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		status := statusFor(last)

		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Error(last.Err))

		c.HTML(status, "error.html", gin.H{
			"Title":   http.StatusText(status),
			"Status":  status,
			"Message": pageMessage(status),
			"Path":    c.Request.URL.Path,
		})
	}
}

// pageMessage is what the browser sees, the full error only goes to the log
func pageMessage(status int) string {
	if status == http.StatusNotFound {
		return users.ErrUserNotFound.Error()
	}
	return http.StatusText(status)
}

func statusFor(err *gin.Error) int {
	switch {
	case errors.Is(err.Err, users.ErrUserNotFound):
		return http.StatusNotFound
	case err.IsType(gin.ErrorTypeBind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
