package rest

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

const (
	tokenKey = "bearerToken"
	classKey = "errorClass"
)

// requestLogger logs one line per request. Bodies and headers are left
// out; they carry passwords and tokens.
func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"status", status,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"latency", time.Since(start),
		}
		if class := c.GetString(classKey); class != "" {
			args = append(args, "class", class)
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			l.Error(ctx, "http_request", args...)
		case status >= 400:
			l.Warn(ctx, "http_request", args...)
		default:
			l.Info(ctx, "http_request", args...)
		}
	}
}

// bearerAuth requires "Authorization: Bearer <token>" and stores the token
// for the handler. The token itself is verified by the service.
func bearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, ok := strings.Cut(c.GetHeader(common.AuthorizationHeaderName), " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, strings.TrimSpace(common.BearerPrefix)) || token == "" {
			abortWithError(c, fmt.Errorf("%w: bearer token required", common.ErrInvalidToken))
			return
		}
		c.Set(tokenKey, token)
		c.Next()
	}
}

// StatusForClass maps an error class onto an HTTP status code.
func StatusForClass(class string) int {
	switch class {
	case common.ClassValidation:
		return http.StatusBadRequest
	case common.ClassConflict:
		return http.StatusConflict
	case common.ClassInvalidCredentials, common.ClassTokenExpired, common.ClassTokenInvalid:
		return http.StatusUnauthorized
	case common.ClassNotFound:
		return http.StatusNotFound
	case common.ClassResourceExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes {error, class}. Store failures get a generic
// message so driver details stay in the server log.
func abortWithError(c *gin.Context, err error) {
	class := common.ClassOf(err)
	msg := err.Error()
	if class == common.ClassStore {
		msg = "internal error"
	}
	c.Set(classKey, class)
	c.AbortWithStatusJSON(StatusForClass(class), gin.H{"error": msg, "class": class})
}
