package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/concave-dev/batchd/internal/logging"
	"github.com/gin-gonic/gin"
)

// loggingMiddleware provides request logging. Status polls and successful
// health checks are logged at DEBUG since clients issue them in tight loops.
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logf := logging.Info
		if param.StatusCode < http.StatusBadRequest && param.Method == http.MethodGet &&
			(strings.HasPrefix(param.Path, "/api/v1/tasks/") || param.Path == "/api/v1/health") {
			logf = logging.Debug
		}

		logf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
		return ""
	})
}

// corsMiddleware provides CORS headers
func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Accept, Content-Type")
		c.Header("Access-Control-Expose-Headers", "Retry-After")
		c.Header("Access-Control-Max-Age", "300")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
