package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RealIP sets the client IP into Gin context (key: "real_ip"), preferring
// the left-most X-Forwarded-For entry. When logger is non-nil each request is
// logged at debug level with that IP.
func RealIP(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if parsed := net.ParseIP(first); parsed != nil {
				ip = parsed.String()
			}
		}
		c.Set("real_ip", ip)
		c.Next()

		if logger != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"ip":         ip,
				"method":     c.Request.Method,
				"path":       c.FullPath(),
				"status":     c.Writer.Status(),
			}).Debug("request")
		}
	}
}
